package buffer

import "fmt"

// ForEachFrame invokes fn once per frame in ascending order, passing the
// frame's interleaved row and its index. The row may be mutated in
// place. The traversal is synchronous and runs to completion.
func (b *Buffer) ForEachFrame(fn func(frame []float64, i int)) {
	for i := 0; i < b.frames; i++ {
		fn(b.Frame(i), i)
	}
}

// ForEachChannel invokes fn once per channel of the given frame in
// ascending order, passing a pointer to the sample for in-place
// mutation. Panics when the frame index is out of range.
func (b *Buffer) ForEachChannel(frame int, fn func(sample *float64, channel int)) {
	if frame < 0 || frame >= b.frames {
		panic(fmt.Sprintf("buffer: frame %d out of range [0,%d)", frame, b.frames))
	}
	row := b.Frame(frame)
	for k := range row {
		fn(&row[k], k)
	}
}

// ForEachSample invokes fn once per flat interleaved sample in ascending
// order, passing a pointer to the sample for in-place mutation.
func (b *Buffer) ForEachSample(fn func(sample *float64, i int)) {
	for i := range b.data {
		fn(&b.data[i], i)
	}
}
