// Package net is the graph-construction and execution core. It resolves an
// ordered list of layer declarations into a connected network of blobs and
// layer invocations, tracks per-blob lifetimes for early storage release,
// binds learnable parameters into a flat network-wide list, and drives
// sequential forward passes over a contiguous layer range.
//
// Construction is strict: duplicate producers, unknown bottom names, and
// conflicting state rules abort with errors wrapping ErrConfig. By-name
// lookups, in contrast, never abort; they return a comma-ok miss.
package net
