// SPDX-License-Identifier: EPL-2.0

// Package pcm drains an audio.Source into 16-bit integer buffers for the
// go-audio encoders.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/utils"
)

// BitDepth of every buffer handed to write.
const BitDepth = 16

var ErrInvalidSampleRate = errors.New("sample rate must be positive")

// Stream reads src to the end and passes the converted samples to write in
// buffers of whole frames. write is called at least once, with an empty
// buffer for an empty source, so encoders always emit a header.
func Stream(src audio.Source, write func(*goaudio.IntBuffer) error) error {
	channels := src.Channels()
	if channels <= 0 {
		return audio.ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, src.SampleRate())
	}

	size := max(src.BufSize(), channels)
	size -= size % channels

	fbuf := make([]float32, size)
	ibuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		Data:           make([]int, size),
		SourceBitDepth: BitDepth,
	}

	wrote := false
	for {
		n, err := src.ReadSamples(fbuf)
		if n > 0 || !wrote {
			utils.Float32sToPCM16(ibuf.Data, fbuf[:n])
			ibuf.Data = ibuf.Data[:n]
			if werr := write(ibuf); werr != nil {
				return fmt.Errorf("%w", werr)
			}
			ibuf.Data = ibuf.Data[:cap(ibuf.Data)]
			wrote = true
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
}
