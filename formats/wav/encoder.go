// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/formats/internal/pcm"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

// Encoder writes a Source as a 16-bit PCM WAV file with the source's rate
// and channel count.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	enc := gowav.NewEncoder(w, src.SampleRate(), pcm.BitDepth, src.Channels(), wavFormatPCM)

	if err := pcm.Stream(src, enc.Write); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}
