package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// mergeOp selects how merged samples land in the destination.
type mergeOp int

const (
	opSet mergeOp = iota // overwrite
	opSum                // additive mix
)

// Unbounded is the framesToCopy sentinel meaning "as many frames as the
// source buffer holds". Kept as -1 for compatibility with existing
// callers.
const Unbounded = -1

// Set overwrites one destination channel with gain-scaled samples from
// one source channel.
//
// framesToCopy frames are read from src starting at frame srcOffset and
// written starting at frame destOffset; Unbounded (-1) reads as many as
// src holds. The copy length is silently clamped to the destination
// space past destOffset and to the source's length past srcOffset.
// Panics when the destination holds no storage, destOffset lies outside
// [0, Frames()), or either channel selection is invalid.
func (b *Buffer) Set(src *Buffer, framesToCopy, srcOffset, destOffset, srcChannel, destChannel int, gain float64) {
	b.merge(opSet, src, framesToCopy, srcOffset, destOffset, srcChannel, destChannel, gain)
}

// Sum adds gain-scaled samples from one source channel into one
// destination channel. Bounds, clamping and preconditions match Set.
func (b *Buffer) Sum(src *Buffer, framesToCopy, srcOffset, destOffset, srcChannel, destChannel int, gain float64) {
	b.merge(opSum, src, framesToCopy, srcOffset, destOffset, srcChannel, destChannel, gain)
}

// SetChannel is Set without bounds or offsets: it copies as much as
// possible from the source channel onto the destination channel.
func (b *Buffer) SetChannel(src *Buffer, srcChannel, destChannel int, gain float64) {
	b.merge(opSet, src, Unbounded, 0, 0, srcChannel, destChannel, gain)
}

// SumChannel is Sum without bounds or offsets: it mixes as much as
// possible from the source channel onto the destination channel.
func (b *Buffer) SumChannel(src *Buffer, srcChannel, destChannel int, gain float64) {
	b.merge(opSum, src, Unbounded, 0, 0, srcChannel, destChannel, gain)
}

// SetAll overwrites every destination channel from src, pairing
// destination channel c with source channel c modulo src.Channels().
// Source channels are cyclically repeated over a wider destination
// (mono fan-out); a narrower destination truncates the cycle, so excess
// source channels are never read.
func (b *Buffer) SetAll(src *Buffer, framesToCopy, srcOffset, destOffset int, gain float64) {
	b.mergeAll(opSet, src, framesToCopy, srcOffset, destOffset, gain)
}

// SumAll mixes every destination channel from src with the same cyclic
// channel pairing as SetAll.
func (b *Buffer) SumAll(src *Buffer, framesToCopy, srcOffset, destOffset int, gain float64) {
	b.mergeAll(opSum, src, framesToCopy, srcOffset, destOffset, gain)
}

// SetFrom is SetAll without bounds or offsets: it copies as much as
// possible.
func (b *Buffer) SetFrom(src *Buffer, gain float64) {
	b.mergeAll(opSet, src, src.Frames(), 0, 0, gain)
}

// SumFrom is SumAll without bounds or offsets: it mixes as much as
// possible.
func (b *Buffer) SumFrom(src *Buffer, gain float64) {
	b.mergeAll(opSum, src, src.Frames(), 0, 0, gain)
}

// merge is the single-channel core shared by the set and sum families.
func (b *Buffer) merge(op mergeOp, src *Buffer, framesToCopy, srcOffset, destOffset, srcChannel, destChannel int, gain float64) {
	if b.data == nil {
		panic("buffer: merge into unallocated buffer")
	}
	if destOffset < 0 || destOffset >= b.frames {
		panic(fmt.Sprintf("buffer: destination offset %d out of range [0,%d)", destOffset, b.frames))
	}
	if srcChannel < 0 || srcChannel >= src.channels {
		panic(fmt.Sprintf("buffer: source channel %d out of range [0,%d)", srcChannel, src.channels))
	}
	if destChannel < 0 || destChannel >= b.channels {
		panic(fmt.Sprintf("buffer: destination channel %d out of range [0,%d)", destChannel, b.channels))
	}

	if framesToCopy == Unbounded {
		framesToCopy = src.frames
	}
	if n := b.frames - destOffset; framesToCopy > n {
		framesToCopy = n
	}

	for d, s := 0, srcOffset; d < framesToCopy && s < src.frames; d, s = d+1, s+1 {
		v := src.data[s*src.channels+srcChannel] * gain
		if op == opSum {
			b.data[(d+destOffset)*b.channels+destChannel] += v
		} else {
			b.data[(d+destOffset)*b.channels+destChannel] = v
		}
	}
}

// mergeAll spreads the single-channel merge over every destination
// channel with cyclic source channel pairing. Runs exactly Channels()
// iterations regardless of the source's width.
func (b *Buffer) mergeAll(op mergeOp, src *Buffer, framesToCopy, srcOffset, destOffset int, gain float64) {
	if b.channels > 0 && b.channels == src.channels && b.mergeBlock(op, src, framesToCopy, srcOffset, destOffset, gain) {
		return
	}
	for destCh, srcCh := 0, 0; destCh < b.channels; destCh, srcCh = destCh+1, srcCh+1 {
		if srcCh == src.channels {
			srcCh = 0
		}
		b.merge(op, src, framesToCopy, srcOffset, destOffset, srcCh, destCh, gain)
	}
}

// mergeBlock handles the equal-channel-count case as one contiguous
// operation on the interleaved storage, using vectorized kernels where
// a matching one exists. Reports whether it performed the merge; the
// caller falls back to the strided per-channel path otherwise.
func (b *Buffer) mergeBlock(op mergeOp, src *Buffer, framesToCopy, srcOffset, destOffset int, gain float64) bool {
	if b.data == nil {
		panic("buffer: merge into unallocated buffer")
	}
	if destOffset < 0 || destOffset >= b.frames {
		panic(fmt.Sprintf("buffer: destination offset %d out of range [0,%d)", destOffset, b.frames))
	}
	if op == opSum && gain != 1 {
		return false
	}

	n := framesToCopy
	if n == Unbounded {
		n = src.frames
	}
	if m := b.frames - destOffset; n > m {
		n = m
	}
	if m := src.frames - srcOffset; n > m {
		n = m
	}
	if n <= 0 {
		return true
	}

	dst := b.data[destOffset*b.channels : (destOffset+n)*b.channels]
	from := src.data[srcOffset*src.channels : (srcOffset+n)*src.channels]
	switch {
	case op == opSum:
		vecmath.AddBlockInPlace(dst, from)
	case gain == 1:
		copy(dst, from)
	default:
		vecmath.ScaleBlock(dst, from, gain)
	}
	return true
}
