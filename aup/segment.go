// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"cmp"
	"fmt"
	"slices"
)

// NoClip is the clip index of silence synthesized between stored blocks.
const NoClip = -1

// BlockRef is one stored block of a clip, positioned in absolute samples.
// Path is empty for blocks stored as silence.
type BlockRef struct {
	Path  string
	Start int64
	End   int64 // exclusive
	Clip  int
}

func (b BlockRef) Len() int64 { return b.End - b.Start }

// Segment is one piece of a channel timeline: either a FileSegment or a
// SilenceSegment. A channel's segments are sorted, contiguous and start
// at sample 0.
type Segment interface {
	Span() (start, end int64)
	ClipIndex() int
}

// FileSegment is backed by the tail of a block file holding little-endian
// float32 samples.
type FileSegment struct {
	Path  string
	Start int64
	End   int64
	Clip  int
}

func (s FileSegment) Span() (int64, int64) { return s.Start, s.End }
func (s FileSegment) ClipIndex() int       { return s.Clip }

// Bytes is the number of bytes of sample data the segment covers.
func (s FileSegment) Bytes() int64 { return (s.End - s.Start) * sampleSize }

// SilenceSegment has no backing file and reads as zeros.
type SilenceSegment struct {
	Start int64
	End   int64
	Clip  int
}

func (s SilenceSegment) Span() (int64, int64) { return s.Start, s.End }
func (s SilenceSegment) ClipIndex() int       { return s.Clip }

// SegmentLen returns end - start of s.
func SegmentLen(s Segment) int64 {
	start, end := s.Span()
	return end - start
}

// ClipBounds is the sample range covered by one clip of a channel.
type ClipBounds struct {
	Clip  int   `json:"clip"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// BuildSegments turns one channel's block references into a gap-free
// segment list. Gaps, including one before the first block, become
// SilenceSegments. Blocks are ordered by start; equal starts keep their
// input order and are then rejected as overlapping, as is any block that
// starts before its predecessor ends.
//
// The returned bounds hold one entry per clip index with at least one
// block, in ascending clip order.
func BuildSegments(blocks []BlockRef) ([]Segment, []ClipBounds, error) {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, func(a, b BlockRef) int {
		return cmp.Compare(a.Start, b.Start)
	})

	segs := make([]Segment, 0, len(sorted))
	bounds := map[int]*ClipBounds{}

	var lastEnd int64
	for _, b := range sorted {
		if b.End <= b.Start {
			return nil, nil, malformed("block [%d, %d) of clip %d is empty", b.Start, b.End, b.Clip)
		}
		if b.Start < 0 {
			return nil, nil, malformed("block [%d, %d) of clip %d starts before sample 0", b.Start, b.End, b.Clip)
		}
		if b.Start < lastEnd {
			return nil, nil, fmt.Errorf("%w: %w: block [%d, %d) of clip %d starts before %d",
				ErrMalformedProject, ErrOverlappingBlocks, b.Start, b.End, b.Clip, lastEnd)
		}
		if b.Start > lastEnd {
			segs = append(segs, SilenceSegment{Start: lastEnd, End: b.Start, Clip: NoClip})
		}

		if b.Path == "" {
			segs = append(segs, SilenceSegment{Start: b.Start, End: b.End, Clip: b.Clip})
		} else {
			segs = append(segs, FileSegment{Path: b.Path, Start: b.Start, End: b.End, Clip: b.Clip})
		}
		lastEnd = b.End

		cb, ok := bounds[b.Clip]
		if !ok {
			bounds[b.Clip] = &ClipBounds{Clip: b.Clip, Start: b.Start, End: b.End}
			continue
		}
		cb.Start = min(cb.Start, b.Start)
		cb.End = max(cb.End, b.End)
	}

	clips := make([]ClipBounds, 0, len(bounds))
	for _, cb := range bounds {
		clips = append(clips, *cb)
	}
	slices.SortFunc(clips, func(a, b ClipBounds) int { return a.Clip - b.Clip })

	return segs, clips, nil
}
