// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
)

// ToEnd as an end time reads up to the last sample of a channel.
var ToEnd = math.Inf(1)

// NumChannels is the number of wave tracks in the project.
func (p *Project) NumChannels() int { return len(p.Channels) }

// ChannelNames returns the track names in channel order.
func (p *Project) ChannelNames() []string {
	names := make([]string, len(p.Channels))
	for i := range p.Channels {
		names[i] = p.Channels[i].Name
	}
	return names
}

// ChannelNSamples returns, per channel, one past the last sample index,
// i.e. the exclusive end of the channel's last segment.
func (p *Project) ChannelNSamples() []int64 {
	n := make([]int64, len(p.Channels))
	for i := range p.Channels {
		n[i] = p.Channels[i].Len()
	}
	return n
}

// ClipBoundaries yields the sample range of each non-empty clip of channel
// ch in ascending clip order.
func (p *Project) ClipBoundaries(ch int) (iter.Seq[ClipBounds], error) {
	if ch < 0 || ch >= len(p.Channels) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidChannel, ch, len(p.Channels))
	}

	return slices.Values(p.Channels[ch].bounds), nil
}

// SampleAt converts seconds to the nearest sample index.
func (p *Project) SampleAt(t float64) int64 {
	return int64(math.Round(t * p.Rate))
}

// ChannelData returns the samples of channel ch between start and end
// seconds. The end is clamped to the channel length; pass ToEnd to read
// everything after start.
func (p *Project) ChannelData(ch int, start, end float64) ([]float32, error) {
	c, err := p.OpenChannel(ch)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	from := p.SampleAt(start)
	to := c.Len()
	if !math.IsInf(end, 1) {
		to = min(to, p.SampleAt(end))
	}

	if from == 0 && c.Len() == 0 {
		return []float32{}, nil
	}
	if err := c.Seek(from); err != nil {
		return nil, err
	}
	if to <= from {
		return []float32{}, nil
	}

	out := make([]float32, 0, to-from)
	for chunk, err := range c.Chunks() {
		if err != nil {
			return nil, fmt.Errorf("channel %d at sample %d: %w", ch, c.Position(), err)
		}

		need := to - from - int64(len(out))
		if int64(len(chunk)) >= need {
			out = append(out, chunk[:need]...)
			break
		}
		out = append(out, chunk...)
	}

	return out, nil
}

// Data returns the samples of every channel between start and end seconds
// as a [sample][channel] matrix. Shorter channels are padded with zeros to
// the longest one; a channel that ends before start contributes only
// padding. Channels are read concurrently.
func (p *Project) Data(start, end float64) ([][]float32, error) {
	cols := make([][]float32, len(p.Channels))

	var g errgroup.Group
	for i := range p.Channels {
		g.Go(func() error {
			d, err := p.ChannelData(i, start, end)
			if errors.Is(err, ErrSeekPastEnd) {
				return nil
			}
			if err != nil {
				return err
			}
			cols[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, col := range cols {
		n = max(n, len(col))
	}

	nch := len(cols)
	flat := make([]float32, n*nch)
	rows := make([][]float32, n)
	for s := range rows {
		row := flat[s*nch : (s+1)*nch : (s+1)*nch]
		for c, col := range cols {
			if s < len(col) {
				row[c] = col[s]
			}
		}
		rows[s] = row
	}

	p.log.Debug("data assembled",
		"project", p.Name,
		"samples", n,
		"channels", nch)

	return rows, nil
}
