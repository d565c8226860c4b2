// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrEncode wraps every failure while writing an AIFF file
	ErrEncode = errors.New("aiff encode")
)
