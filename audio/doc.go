// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by project
// readers and exporters.
//
// This package contains:
//   - Source interface for pulling float32 samples
//   - Encoder interface for writing a Source to a file format
//   - Registry for looking up encoders by format name
//   - MonoMixer for folding several channels into one
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Project channels (see package aup) and the mixer implement Source, so
// they can be chained and handed to any Encoder.
//
// # Channel Mixing
//
// The MonoMixer averages interleaved channels into a single one:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Encoder{})
//	enc, _ := registry.Get("wav")
//	err := enc.Encode(file, mono)
//
// # Sample Format
//
// Samples are float32 as stored by the project, nominally in [-1.0, 1.0].
// Values outside that range are kept; encoders clip them when converting
// to integer PCM.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with the last samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
