// SPDX-License-Identifier: EPL-2.0

package aupstream

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/internal/audiotest"
)

func fixture(t *testing.T) *aup.Project {
	t.Helper()

	path := audiotest.WriteProject(t, t.TempDir(), audiotest.Project{
		Name: "pcm",
		Rate: 8000,
		Tracks: []audiotest.Track{
			{Clips: []audiotest.Clip{{Blocks: []audiotest.Block{{Samples: []float32{0, 0.5, -0.5, 1, -1}}}}}},
			{Clips: []audiotest.Clip{{Blocks: []audiotest.Block{{Samples: []float32{0.5, 0.5, 0.5}}}}}},
		},
	})

	p, err := aup.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return p
}

func TestToMono16(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(16000, 2, 3, func(i int, ch int) float32 {
		return []float32{0.25, 0.75}[ch]
	})

	pcm, rate, err := ToMono16(src, 2)
	if err != nil {
		t.Fatalf("ToMono16() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("rate = %d, want 16000", rate)
	}
	if want := []int16{16384, 16384, 16384}; !slices.Equal(pcm, want) {
		t.Errorf("pcm = %v, want %v", pcm, want)
	}
	if src.Closed() {
		t.Error("ToMono16() closed its source")
	}
}

func TestChannelToPCM16(t *testing.T) {
	t.Parallel()

	p := fixture(t)

	pcm, rate, err := ChannelToPCM16(p, 0, 0, aup.ToEnd)
	if err != nil {
		t.Fatalf("ChannelToPCM16() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("rate = %d, want 8000", rate)
	}
	if want := []int16{0, 16384, -16384, 32767, -32768}; !slices.Equal(pcm, want) {
		t.Errorf("pcm = %v, want %v", pcm, want)
	}

	if _, _, err := ChannelToPCM16(p, 2, 0, aup.ToEnd); !errors.Is(err, aup.ErrInvalidChannel) {
		t.Errorf("ChannelToPCM16(2) error = %v, want ErrInvalidChannel", err)
	}
}

func TestMixdownToPCM16(t *testing.T) {
	t.Parallel()

	p := fixture(t)

	pcm, _, err := MixdownToPCM16(p, 0, aup.ToEnd)
	if err != nil {
		t.Fatalf("MixdownToPCM16() error = %v", err)
	}

	// (0+0.5)/2, (0.5+0.5)/2, (-0.5+0.5)/2, (1+0)/2, (-1+0)/2
	if want := []int16{8192, 16384, 0, 16384, -16384}; !slices.Equal(pcm, want) {
		t.Errorf("pcm = %v, want %v", pcm, want)
	}
}

func TestMixdownToPCM16_NoChannels(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteProject(t, t.TempDir(), audiotest.Project{Name: "none", Rate: 8000})
	p, err := aup.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, _, err := MixdownToPCM16(p, 0, aup.ToEnd); !errors.Is(err, audio.ErrNoChannels) {
		t.Errorf("MixdownToPCM16() error = %v, want ErrNoChannels", err)
	}
}
