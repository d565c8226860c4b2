// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds an interleaved multi-channel Source into one channel by
// averaging each frame. Used for project mixdowns.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	switch channels {
	case 0:
		return 0, ErrNoChannels
	case 1:
		return m.src.ReadSamples(dst)
	}

	samplesNeeded := len(dst) * channels

	// grow, never shrink
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	invChannels := float32(1.0) / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			sum := float32(0)
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * invChannels
		}
	}

	return frames, err
}
