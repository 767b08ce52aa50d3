package net

import "errors"

var (
	// ErrConfig marks unrecoverable description errors detected during
	// construction or parameter loading: duplicate blob producers, unknown
	// bottom names, include and exclude rules on one layer, a non-input
	// first layer, and parameter count or shape mismatches.
	ErrConfig = errors.New("invalid network configuration")

	// ErrPrecondition marks out-of-range layer indices passed to the
	// forward range calls.
	ErrPrecondition = errors.New("precondition violated")
)
