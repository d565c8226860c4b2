// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/formats/internal/pcm"
)

// Encoder writes a Source as a 16-bit PCM AIFF file.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	enc := goaiff.NewEncoder(w, src.SampleRate(), pcm.BitDepth, src.Channels())

	if err := pcm.Stream(src, enc.Write); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}
