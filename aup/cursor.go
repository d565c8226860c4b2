// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
)

// sampleSize is the on-disk size of one float32 sample.
const sampleSize = 4

// Cursor reads one channel of a Project as a sequence of chunks, one per
// remaining segment. A Cursor is not safe for concurrent use, but any
// number of cursors over the same Project may run in parallel.
type Cursor struct {
	ch   *Channel
	open bool

	seg    int   // index of the next segment to read
	offset int64 // samples of segs[seg] already consumed
	pos    int64 // absolute sample position
}

// OpenChannel returns a cursor positioned at the first sample of channel ch.
func (p *Project) OpenChannel(ch int) (*Cursor, error) {
	if ch < 0 || ch >= len(p.Channels) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidChannel, ch, len(p.Channels))
	}

	return &Cursor{ch: &p.Channels[ch], open: true}, nil
}

// Close invalidates the cursor. Closing twice is harmless.
func (c *Cursor) Close() error {
	c.open = false
	return nil
}

// Channel is the index of the channel the cursor reads.
func (c *Cursor) Channel() int { return c.ch.Index }

// Position is the absolute sample the next chunk starts at.
func (c *Cursor) Position() int64 { return c.pos }

// Len is the number of samples in the cursor's channel.
func (c *Cursor) Len() int64 { return c.ch.Len() }

// Seek moves the cursor to sample pos. The segment holding pos is the
// first one whose end lies beyond it.
func (c *Cursor) Seek(pos int64) error {
	if !c.open {
		return ErrNotOpen
	}
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeek, pos)
	}
	if total := c.ch.Len(); pos >= total {
		return fmt.Errorf("%w: %d >= %d", ErrSeekPastEnd, pos, total)
	}

	for i, s := range c.ch.segments {
		start, end := s.Span()
		if end > pos {
			c.seg = i
			c.offset = pos - start
			c.pos = pos
			return nil
		}
	}

	// unreachable while segments are contiguous from 0
	return fmt.Errorf("%w: %d", ErrSeekPastEnd, pos)
}

// ReadChunk returns the unread samples of the current segment and moves to
// the next one. It returns io.EOF once every segment has been read. Chunk
// lengths follow the segment layout and are not uniform.
func (c *Cursor) ReadChunk() ([]float32, error) {
	if !c.open {
		return nil, ErrNotOpen
	}
	if c.seg >= len(c.ch.segments) {
		return nil, io.EOF
	}

	seg := c.ch.segments[c.seg]
	remaining := SegmentLen(seg) - c.offset

	var (
		chunk []float32
		err   error
	)
	switch s := seg.(type) {
	case SilenceSegment:
		chunk = make([]float32, remaining)
	case FileSegment:
		chunk, err = readTail(s, remaining)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown segment type %T", seg)
	}

	c.seg++
	c.offset = 0
	c.pos += int64(len(chunk))

	return chunk, nil
}

// Chunks yields the remaining chunks of the cursor. Iteration stops after
// the last chunk or after yielding the first error. Stopping early leaves
// the cursor after the last chunk yielded.
func (c *Cursor) Chunks() iter.Seq2[[]float32, error] {
	return func(yield func([]float32, error) bool) {
		for {
			chunk, err := c.ReadChunk()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(chunk, err) || err != nil {
				return
			}
		}
	}
}

// readTail reads the last n samples of the segment's block file. Block
// files may carry a header, so samples are addressed from the end.
func readTail(s FileSegment, n int64) ([]float32, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open block file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat block file: %w", err)
	}
	if fi.Size() < s.Bytes() {
		return nil, fmt.Errorf("%w: %s holds %d bytes, want at least %d",
			ErrTruncatedBlockFile, s.Path, fi.Size(), s.Bytes())
	}

	if _, err := f.Seek(-n*sampleSize, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("seek block file: %w", err)
	}

	buf := make([]byte, n*sampleSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTruncatedBlockFile, s.Path, err)
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*sampleSize:]))
	}

	return out, nil
}
