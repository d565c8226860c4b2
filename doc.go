// SPDX-License-Identifier: EPL-2.0

// Package aupstream turns Audacity .aup projects back into sample streams.
//
// An .aup project does not hold audio itself: it describes tracks, clips
// and sequences that reference many small block files of raw float32
// samples. The aup subpackage rebuilds a seekable, gap-filled timeline per
// channel from those references.
//
// # Quick Start
//
//	p, err := aup.Open("interview.aup")
//	if err != nil {
//	    return err
//	}
//
//	// One channel as float32, from 2s to the end
//	samples, err := p.ChannelData(0, 2, aup.ToEnd)
//
//	// All channels as a [sample][channel] matrix
//	rows, err := p.Data(0, aup.ToEnd)
//
//	// One channel as 16-bit PCM
//	pcm16, rate, err := aupstream.ChannelToPCM16(p, 0, 0, aup.ToEnd)
//
// # Exporting
//
// Channels are audio.Source values and can be written by any encoder:
//
//	src, _ := aup.NewChannelSource(p, 0, 0, aup.ToEnd)
//	file, _ := os.Create("track0.wav")
//	err := wav.Encoder{}.Encode(file, src)
//
// Supported output formats:
//   - WAV (PCM 16-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - label CSV and JSON via formats/labels
//
// # Samples
//
// Samples are exposed exactly as stored, at the project rate. Gaps between
// clips read as zeros. Conversion to 16-bit scales by 2^15, clips and
// truncates toward zero.
//
// See the individual subpackages for more detailed documentation.
package aupstream
