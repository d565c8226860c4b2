// SPDX-License-Identifier: EPL-2.0

// Package aiff writes audio.Source streams as AIFF files.
//
// This package uses github.com/go-audio/aiff for the container and the
// same 16-bit conversion as package wav.
//
//	file, _ := os.Create("mixdown.aif")
//	defer file.Close()
//	err := aiff.Encoder{}.Encode(file, audio.NewMonoMixer(src))
package aiff
