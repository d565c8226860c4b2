// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates interleaved audio.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a source of totalSamples frames whose values come
// from waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewSliceSource plays back mono samples.
func NewSliceSource(sampleRate int, samples []float32) *MockSource {
	return NewMockSource(sampleRate, 1, len(samples), func(sample int, _ int) float32 {
		return samples[sample]
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
