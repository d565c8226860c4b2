// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples.
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Encoder writes everything a Source yields to w in one file format.
// Formats with a size header need to seek back, hence io.WriteSeeker.
type Encoder interface {
	Encode(w io.WriteSeeker, src Source) error
}

// Registry for encoders by format key (e.g., "wav", "aiff").
type Registry struct {
	codecs map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Encoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = e
}

func (r *Registry) Get(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.codecs[format]
	return e, ok
}

// Formats lists the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	return out
}
