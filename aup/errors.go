// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedProject indicates missing or invalid required project data.
	ErrMalformedProject = errors.New("malformed project")

	// ErrOverlappingBlocks indicates two blocks of one channel share samples.
	// Errors carrying it also match ErrMalformedProject.
	ErrOverlappingBlocks = errors.New("overlapping blocks")

	// ErrBlockFileMissing indicates a referenced block file is absent on disk.
	ErrBlockFileMissing = errors.New("block file missing")

	// ErrTruncatedBlockFile indicates a block file is shorter than its declared length.
	ErrTruncatedBlockFile = errors.New("truncated block file")

	ErrInvalidChannel = errors.New("channel number out of bounds")
	ErrNotOpen        = errors.New("cursor not open")
	ErrSeekPastEnd    = errors.New("seek past end of channel")
	ErrNegativeSeek   = errors.New("seek to negative position")
)

// BlockFileMissingError names the block file path that was expected but not found.
type BlockFileMissingError struct {
	Project string
	Path    string
}

func (e *BlockFileMissingError) Error() string {
	return fmt.Sprintf("%s in %s: %s", ErrBlockFileMissing, e.Project, e.Path)
}

func (e *BlockFileMissingError) Unwrap() error { return ErrBlockFileMissing }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedProject, fmt.Sprintf(format, args...))
}
