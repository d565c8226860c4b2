// SPDX-License-Identifier: EPL-2.0

// Package aup reads the audio of Audacity .aup projects.
//
// A project stores each wave track as clips of small block files holding
// raw little-endian float32 samples. Open resolves every block file,
// checks that it exists and builds, per channel, a sorted gap-free list of
// segments: FileSegment for stored samples and SilenceSegment for the
// gaps between them.
//
// # Reading
//
// A Cursor walks one channel segment by segment:
//
//	p, err := aup.Open("session.aup")
//	cur, err := p.OpenChannel(0)
//	defer cur.Close()
//	if err := cur.Seek(44100); err != nil {
//	    return err
//	}
//	for chunk, err := range cur.Chunks() {
//	    // chunk holds one segment's samples
//	}
//
// Every chunk opens, reads and closes exactly one block file; no file
// handle outlives a chunk.
//
// Higher level helpers read by time:
//
//	left, err := p.ChannelData(0, 1.5, aup.ToEnd)
//	rows, err := p.Data(0, 10) // [sample][channel], zero padded
//
// # Sources
//
// ChannelSource and ProjectSource adapt a project to audio.Source so it
// can be mixed and encoded like any other stream.
//
// # Errors
//
// Layout problems (ErrMalformedProject, ErrOverlappingBlocks,
// ErrBlockFileMissing) fail Open. Cursor misuse (ErrInvalidChannel,
// ErrNotOpen, ErrSeekPastEnd) and short block files
// (ErrTruncatedBlockFile) are reported by the call that hits them.
package aup
