// SPDX-License-Identifier: EPL-2.0

package aup_test

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/internal/audiotest"
)

// gapped has one channel: clip 0 holds blocks of 10 and 20 samples at 0,
// clip 1 starts at sample 50 with 5 silent and 15 stored samples.
func gapped(header int) audiotest.Project {
	return audiotest.Project{
		Name:        "gapped",
		Rate:        10,
		HeaderBytes: header,
		Tracks: []audiotest.Track{{
			Name: "voice",
			Clips: []audiotest.Clip{
				{Blocks: []audiotest.Block{
					{Start: 0, Samples: audiotest.Ramp(10, 1, 1)},
					{Start: 10, Samples: audiotest.Ramp(20, 11, 1)},
				}},
				{Offset: 5, Blocks: []audiotest.Block{
					{Start: 0, SilentLen: 5},
					{Start: 5, Samples: audiotest.Ramp(15, 100, 1)},
				}},
			},
		}},
	}
}

func gappedWant() []float32 {
	want := make([]float32, 0, 70)
	want = append(want, audiotest.Ramp(30, 1, 1)...)
	want = append(want, make([]float32, 25)...)
	want = append(want, audiotest.Ramp(15, 100, 1)...)
	return want
}

func readAll(t *testing.T, c *aup.Cursor) ([]float32, []int) {
	t.Helper()

	var (
		out  []float32
		lens []int
	)
	for chunk, err := range c.Chunks() {
		if err != nil {
			t.Fatalf("Chunks() error = %v", err)
		}
		out = append(out, chunk...)
		lens = append(lens, len(chunk))
	}
	return out, lens
}

func TestCursor_ReadsWholeChannel(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))

	c, err := p.OpenChannel(0)
	if err != nil {
		t.Fatalf("OpenChannel() error = %v", err)
	}
	defer c.Close()

	if c.Len() != 70 {
		t.Fatalf("Len() = %d, want 70", c.Len())
	}

	got, lens := readAll(t, c)
	if !slices.Equal(got, gappedWant()) {
		t.Errorf("samples = %v, want %v", got, gappedWant())
	}
	if want := []int{10, 20, 20, 5, 15}; !slices.Equal(lens, want) {
		t.Errorf("chunk lengths = %v, want %v", lens, want)
	}
	if c.Position() != 70 {
		t.Errorf("Position() = %d, want 70", c.Position())
	}

	if _, err := c.ReadChunk(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadChunk() after end error = %v, want io.EOF", err)
	}
}

func TestCursor_SeekThenReadMatchesChannelData(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))
	all := gappedWant()

	for _, pos := range []int64{0, 1, 9, 10, 29, 30, 42, 54, 55, 69} {
		c, err := p.OpenChannel(0)
		if err != nil {
			t.Fatalf("OpenChannel() error = %v", err)
		}
		if err := c.Seek(pos); err != nil {
			t.Fatalf("Seek(%d) error = %v", pos, err)
		}
		if c.Position() != pos {
			t.Errorf("Position() after Seek(%d) = %d", pos, c.Position())
		}

		got, lens := readAll(t, c)
		if !slices.Equal(got, all[pos:]) {
			t.Errorf("Seek(%d): samples = %v, want %v", pos, got, all[pos:])
		}
		if len(lens) == 0 || lens[0] == 0 {
			t.Errorf("Seek(%d): first chunk empty", pos)
		}

		data, err := p.ChannelData(0, float64(pos)/p.Rate, aup.ToEnd)
		if err != nil {
			t.Fatalf("ChannelData() error = %v", err)
		}
		if !slices.Equal(data, got) {
			t.Errorf("Seek(%d): ChannelData differs from cursor read", pos)
		}
		c.Close()
	}
}

func TestCursor_SeekPartialFirstChunk(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))
	c, _ := p.OpenChannel(0)
	defer c.Close()

	if err := c.Seek(25); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	chunk, err := c.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	if want := audiotest.Ramp(5, 26, 1); !slices.Equal(chunk, want) {
		t.Errorf("chunk = %v, want %v", chunk, want)
	}
}

func TestCursor_HeaderBytesAreSkipped(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(37))

	data, err := p.ChannelData(0, 0, aup.ToEnd)
	if err != nil {
		t.Fatalf("ChannelData() error = %v", err)
	}
	if !slices.Equal(data, gappedWant()) {
		t.Errorf("samples = %v, want %v", data, gappedWant())
	}
}

func TestCursor_Errors(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))

	if _, err := p.OpenChannel(p.NumChannels()); !errors.Is(err, aup.ErrInvalidChannel) {
		t.Errorf("OpenChannel(nchannels) error = %v, want ErrInvalidChannel", err)
	}
	if _, err := p.OpenChannel(-1); !errors.Is(err, aup.ErrInvalidChannel) {
		t.Errorf("OpenChannel(-1) error = %v, want ErrInvalidChannel", err)
	}

	c, err := p.OpenChannel(0)
	if err != nil {
		t.Fatalf("OpenChannel() error = %v", err)
	}
	if err := c.Seek(70); !errors.Is(err, aup.ErrSeekPastEnd) {
		t.Errorf("Seek(len) error = %v, want ErrSeekPastEnd", err)
	}
	if err := c.Seek(-1); !errors.Is(err, aup.ErrNegativeSeek) {
		t.Errorf("Seek(-1) error = %v, want ErrNegativeSeek", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := c.Seek(0); !errors.Is(err, aup.ErrNotOpen) {
		t.Errorf("Seek() after Close error = %v, want ErrNotOpen", err)
	}
	if _, err := c.ReadChunk(); !errors.Is(err, aup.ErrNotOpen) {
		t.Errorf("ReadChunk() after Close error = %v, want ErrNotOpen", err)
	}
}

func TestCursor_TruncatedBlockFile(t *testing.T) {
	t.Parallel()

	p := openFixture(t, audiotest.Project{
		Name: "short",
		Rate: 100,
		Tracks: []audiotest.Track{{
			Clips: []audiotest.Clip{{
				Blocks: []audiotest.Block{
					{Samples: audiotest.Ramp(10, 0, 1)},
					{Start: 10, Samples: audiotest.Ramp(10, 0, 1), Truncate: 6},
				},
			}},
		}},
	})

	c, _ := p.OpenChannel(0)
	defer c.Close()

	if _, err := c.ReadChunk(); err != nil {
		t.Fatalf("first ReadChunk() error = %v", err)
	}
	if _, err := c.ReadChunk(); !errors.Is(err, aup.ErrTruncatedBlockFile) {
		t.Errorf("second ReadChunk() error = %v, want ErrTruncatedBlockFile", err)
	}

	if _, err := p.ChannelData(0, 0, aup.ToEnd); !errors.Is(err, aup.ErrTruncatedBlockFile) {
		t.Errorf("ChannelData() error = %v, want ErrTruncatedBlockFile", err)
	}
}

func TestCursor_ChunksStopsEarly(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))
	c, _ := p.OpenChannel(0)
	defer c.Close()

	for range c.Chunks() {
		break
	}
	if c.Position() != 10 {
		t.Errorf("Position() = %d, want 10", c.Position())
	}

	chunk, err := c.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	if len(chunk) != 20 || chunk[0] != 11 {
		t.Errorf("next chunk = %v, want the second block", chunk)
	}
}

func TestCursor_ParallelCursors(t *testing.T) {
	t.Parallel()

	p := openFixture(t, gapped(0))
	want := gappedWant()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Go(func() {
			data, err := p.ChannelData(0, 0, aup.ToEnd)
			if err != nil {
				errs <- err
				return
			}
			if !slices.Equal(data, want) {
				errs <- errors.New("parallel read returned different samples")
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
