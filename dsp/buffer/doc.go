// Package buffer provides an interleaved multi-channel float64 sample
// container with owning and non-owning (view) storage modes and a
// channel-aware copy/mix algebra (the Set and Sum families). It is the
// unit of sample storage that mixing and routing stages operate on.
//
// Two long-standing API quirks are preserved on purpose, since existing
// callers depend on them: -1 acts as an "unbounded" sentinel for frame
// counts and range ends (see Unbounded), and Peak tracks a running
// maximum against an initial 0.0, so an all-negative channel reports a
// peak of 0.0.
//
// The package performs no I/O and no locking; callers coordinate
// concurrent access externally. Index misuse panics rather than
// returning an error.
package buffer
