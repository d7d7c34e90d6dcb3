package buffer

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-audio/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Buffer holds interleaved multi-channel audio samples. Sample (frame i,
// channel k) lives at data[i*channels+k].
//
// A Buffer either owns its storage (allocated by this package) or views
// storage managed by the caller; see View. The zero value is an empty
// owning buffer.
type Buffer struct {
	data     []float64
	frames   int
	channels int
	viewing  bool
}

// New returns an owning, zero-filled buffer of frames x channels samples.
// Panics if either count is negative.
func New(frames, channels int) *Buffer {
	b := &Buffer{}
	b.Alloc(frames, channels)
	return b
}

// View wraps caller-managed storage without copying. The buffer never
// frees or reallocates the wrapped slice, and mutations are visible in
// both directions. The slice must hold at least frames*channels samples;
// the caller keeps it alive for the view's lifetime.
func View(data []float64, frames, channels int) *Buffer {
	if frames < 0 || channels < 0 {
		panic("buffer: negative frame or channel count")
	}
	if len(data) < frames*channels {
		panic(fmt.Sprintf("buffer: view needs %d samples, slice has %d", frames*channels, len(data)))
	}
	if frames*channels == 0 {
		data = nil
	} else {
		data = data[:frames*channels]
	}
	return &Buffer{data: data, frames: frames, channels: channels, viewing: true}
}

// Alloc discards any current storage and allocates fresh zero-filled
// owning storage for frames x channels samples. The counts are recorded
// even when their product is zero; no storage is held in that case.
// Panics if either count is negative.
func (b *Buffer) Alloc(frames, channels int) {
	if frames < 0 || channels < 0 {
		panic("buffer: negative frame or channel count")
	}
	b.Free()
	b.frames = frames
	b.channels = channels
	if n := frames * channels; n > 0 {
		b.data = make([]float64, n)
	}
}

// Free releases the buffer back to the empty state: zero counts, no
// storage, owning mode. A view merely drops its reference; the wrapped
// memory is left untouched for its owner.
func (b *Buffer) Free() {
	b.data = nil
	b.frames = 0
	b.channels = 0
	b.viewing = false
}

// Frames returns the number of frames.
func (b *Buffer) Frames() int { return b.frames }

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return b.channels }

// Samples returns the total flat sample count, frames*channels.
func (b *Buffer) Samples() int { return b.frames * b.channels }

// IsAllocated reports whether the buffer currently holds storage.
func (b *Buffer) IsAllocated() bool { return b.data != nil }

// IsView reports whether the storage is caller-managed.
func (b *Buffer) IsView() bool { return b.viewing }

// Frame returns the interleaved row for frame i; indexing the returned
// slice by channel yields the individual sample. Panics when storage is
// absent or i is out of range.
func (b *Buffer) Frame(i int) []float64 {
	if b.data == nil {
		panic("buffer: not allocated")
	}
	if i < 0 || i >= b.frames {
		panic(fmt.Sprintf("buffer: frame %d out of range [0,%d)", i, b.frames))
	}
	return b.data[i*b.channels : (i+1)*b.channels]
}

// Data returns the whole backing slice in interleaved order, or nil for
// an empty buffer.
func (b *Buffer) Data() []float64 { return b.data }

// Clone returns an owning deep copy. Cloning a view detaches from the
// viewed memory.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{}
	c.CopyFrom(b)
	return c
}

// CopyFrom replaces the buffer's contents with an owning deep copy of
// src, releasing any prior storage first. Copying from itself is a no-op.
func (b *Buffer) CopyFrom(src *Buffer) {
	if b == src {
		return
	}
	b.Free()
	b.frames = src.frames
	b.channels = src.channels
	if n := src.frames * src.channels; n > 0 {
		b.data = make([]float64, n)
		copy(b.data, src.data)
	}
}

// MoveFrom transfers src's storage, counts and view flag into b and
// resets src to the empty state. No samples are copied. Moving from
// itself is a no-op.
func (b *Buffer) MoveFrom(src *Buffer) {
	if b == src {
		return
	}
	b.data = src.data
	b.frames = src.frames
	b.channels = src.channels
	b.viewing = src.viewing
	src.Free()
}

// Clear zeroes every sample.
func (b *Buffer) Clear() {
	b.ClearRange(0, -1)
}

// ClearRange zeroes all channels of the frame range [a, end). The end
// frame -1 means "to the end of the buffer". Silent no-op when no
// storage is held.
func (b *Buffer) ClearRange(a, end int) {
	if b.data == nil {
		return
	}
	if end == -1 {
		end = b.frames
	}
	core.Zero(b.data[a*b.channels : end*b.channels])
}

// ApplyGain scales every sample by g.
func (b *Buffer) ApplyGain(g float64) {
	b.ApplyGainRange(g, 0, -1)
}

// ApplyGainRange scales the flat sample range [a, end) by g. These are
// sample indices into the interleaved storage, not frame indices; the
// operation is channel-agnostic. The end index -1 means "to the last
// sample".
func (b *Buffer) ApplyGainRange(g float64, a, end int) {
	if end == -1 {
		end = b.Samples()
	}
	if a >= end {
		return
	}
	vecmath.ScaleBlockInPlace(b.data[a:end], g)
}

// Peak returns the highest sample value seen on the channel across the
// whole buffer. See PeakRange for the zero-floor behavior.
func (b *Buffer) Peak(channel int) float64 {
	return b.PeakRange(channel, 0, -1)
}

// PeakRange returns the highest sample value seen on the channel across
// frames [a, end), with end == -1 meaning "to the end".
//
// Compatibility quirk, kept deliberately: the accumulator starts at 0.0
// and only ever moves up, so a channel holding only negative samples
// reports 0.0 rather than its true signed maximum. This is a running
// max against zero, not an absolute-value peak.
func (b *Buffer) PeakRange(channel, a, end int) float64 {
	if channel < 0 || channel >= b.channels {
		panic(fmt.Sprintf("buffer: channel %d out of range [0,%d)", channel, b.channels))
	}
	if end == -1 {
		end = b.frames
	}
	if a < 0 || end > b.frames {
		panic(fmt.Sprintf("buffer: peak range [%d,%d) outside [0,%d)", a, end, b.frames))
	}
	peak := 0.0
	for i := a; i < end; i++ {
		if v := b.data[i*b.channels+channel]; v > peak {
			peak = v
		}
	}
	return peak
}

// Dump writes one line per frame with all channel values, for debugging.
func (b *Buffer) Dump(w io.Writer) {
	for i := 0; i < b.frames; i++ {
		for k, v := range b.Frame(i) {
			if k > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%f", v)
		}
		fmt.Fprintln(w)
	}
}

// String returns a compact summary of the buffer's shape and mode.
func (b *Buffer) String() string {
	mode := "owning"
	if b.viewing {
		mode = "view"
	}
	return fmt.Sprintf("buffer.Buffer(%d frames, %d channels, %s)", b.frames, b.channels, mode)
}
