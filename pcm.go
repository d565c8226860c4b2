// SPDX-License-Identifier: EPL-2.0

package aupstream

import (
	"fmt"
	"io"

	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/utils"
)

// ToMono16 folds src to mono and collects it as 16-bit PCM.
//
// Returns the samples and the source sample rate. The source is drained
// but not closed.
func ToMono16(src audio.Source, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(src)

	pcm16 := make([]int16, 0, bufferSize)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToPCM16(buf[i]))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, src.SampleRate(), fmt.Errorf("%w", err)
		}
	}

	return pcm16, src.SampleRate(), nil
}

// ChannelToPCM16 returns channel ch of p between start and end seconds as
// 16-bit PCM at the project rate. end may be aup.ToEnd.
func ChannelToPCM16(p *aup.Project, ch int, start, end float64) ([]int16, int, error) {
	src, err := aup.NewChannelSource(p, ch, start, end)
	if err != nil {
		return nil, 0, err
	}
	defer src.Close()

	return ToMono16(src, src.BufSize())
}

// MixdownToPCM16 averages every channel of p between start and end
// seconds into one 16-bit PCM stream.
func MixdownToPCM16(p *aup.Project, start, end float64) ([]int16, int, error) {
	src, err := aup.NewProjectSource(p, start, end)
	if err != nil {
		return nil, 0, err
	}
	defer src.Close()

	return ToMono16(src, 4096)
}
