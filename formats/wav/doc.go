// SPDX-License-Identifier: EPL-2.0

// Package wav writes audio.Source streams as WAV files.
//
// It uses github.com/go-audio/wav for the RIFF container. Samples are
// written as 16-bit PCM: each float32 is scaled by 2^15, clipped to
// [-32768, 32767] and truncated toward zero.
//
// # Writing WAV Files
//
//	src, _ := aup.NewChannelSource(project, 0, 0, aup.ToEnd)
//	file, _ := os.Create("track0.wav")
//	defer file.Close()
//	err := wav.Encoder{}.Encode(file, src)
//
// The encoder seeks back to patch chunk sizes once the source is
// drained, so the destination must be an io.WriteSeeker.
//
// # Errors
//
// All failures are wrapped in ErrEncode:
//
//	if errors.Is(err, wav.ErrEncode) {
//	    // the output file is incomplete
//	}
package wav
