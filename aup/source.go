// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/aupstream/audio"
)

var (
	_ audio.Source = (*ChannelSource)(nil)
	_ audio.Source = (*ProjectSource)(nil)
)

// ChannelSource streams one channel between two times as a mono
// audio.Source, pulling one segment chunk at a time from a Cursor.
type ChannelSource struct {
	cur     *Cursor
	rate    int
	left    int64 // samples still to hand out
	pending []float32
}

// NewChannelSource opens channel ch and positions it at start seconds.
// end may be ToEnd.
func NewChannelSource(p *Project, ch int, start, end float64) (*ChannelSource, error) {
	cur, err := p.OpenChannel(ch)
	if err != nil {
		return nil, err
	}

	from := p.SampleAt(start)
	to := cur.Len()
	if !math.IsInf(end, 1) {
		to = min(to, p.SampleAt(end))
	}

	if from != 0 || cur.Len() != 0 {
		if err := cur.Seek(from); err != nil {
			return nil, err
		}
	}

	return &ChannelSource{
		cur:  cur,
		rate: rateHz(p.Rate),
		left: max(to-from, 0),
	}, nil
}

func (s *ChannelSource) SampleRate() int { return s.rate }
func (s *ChannelSource) Channels() int   { return 1 }
func (s *ChannelSource) BufSize() int    { return 4096 }
func (s *ChannelSource) Close() error    { return s.cur.Close() }

func (s *ChannelSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) && s.left > 0 {
		if len(s.pending) == 0 {
			chunk, err := s.cur.ReadChunk()
			if errors.Is(err, io.EOF) {
				s.left = 0
				break
			}
			if err != nil {
				return n, fmt.Errorf("channel %d at sample %d: %w", s.cur.Channel(), s.cur.Position(), err)
			}
			s.pending = chunk
		}

		k := copy(dst[n:], s.pending[:min(int64(len(s.pending)), s.left)])
		s.pending = s.pending[k:]
		s.left -= int64(k)
		n += k
	}

	if s.left == 0 {
		return n, io.EOF
	}
	return n, nil
}

// ProjectSource plays every channel of a project as one interleaved
// audio.Source, zero-padded to the longest channel.
type ProjectSource struct {
	rate     int
	channels int
	rows     [][]float32
	frame    int
}

// NewProjectSource reads the range [start, end) of every channel.
func NewProjectSource(p *Project, start, end float64) (*ProjectSource, error) {
	if p.NumChannels() == 0 {
		return nil, fmt.Errorf("%w: project %s", audio.ErrNoChannels, p.Name)
	}

	rows, err := p.Data(start, end)
	if err != nil {
		return nil, err
	}

	return &ProjectSource{
		rate:     rateHz(p.Rate),
		channels: p.NumChannels(),
		rows:     rows,
	}, nil
}

func (s *ProjectSource) SampleRate() int { return s.rate }
func (s *ProjectSource) Channels() int   { return s.channels }
func (s *ProjectSource) BufSize() int    { return 4096 * s.channels }
func (s *ProjectSource) Close() error    { return nil }

func (s *ProjectSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.frame >= len(s.rows) {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.channels, len(s.rows)-s.frame)
	for f := range frames {
		copy(dst[f*s.channels:], s.rows[s.frame+f])
	}
	s.frame += frames

	if s.frame >= len(s.rows) {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}

func rateHz(rate float64) int {
	return int(math.Round(rate))
}
