// Package spectrum provides frequency-domain views of single channels of
// an interleaved audio buffer.
package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-audio/dsp/buffer"
	"github.com/cwbudde/algo-audio/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrNotAllocated is returned when the buffer holds no storage.
	ErrNotAllocated = errors.New("spectrum: buffer not allocated")

	// ErrInvalidChannel is returned for a channel index outside the buffer.
	ErrInvalidChannel = errors.New("spectrum: channel out of range")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n : 2*n], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// ChannelMagnitude returns |X[k]| for bins 0..fftSize/2 of one channel.
//
// fftSize 0 selects the next power of two at or above the frame count;
// an explicit size must be accepted by the FFT backend, and frames
// beyond it are ignored while shorter channels are zero-padded.
func ChannelMagnitude(b *buffer.Buffer, channel, fftSize int) ([]float64, error) {
	bins, err := transformChannel(b, channel, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(bins))
	re, im, buf := getScratch(len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out, nil
}

// ChannelPower returns |X[k]|^2 for bins 0..fftSize/2 of one channel.
// Sizing rules match ChannelMagnitude.
func ChannelPower(b *buffer.Buffer, channel, fftSize int) ([]float64, error) {
	bins, err := transformChannel(b, channel, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(bins))
	re, im, buf := getScratch(len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out, nil
}

// transformChannel deinterleaves one channel, zero-pads it to fftSize
// and returns the non-redundant half of its forward transform.
func transformChannel(b *buffer.Buffer, channel, fftSize int) ([]complex128, error) {
	if !b.IsAllocated() {
		return nil, ErrNotAllocated
	}
	if channel < 0 || channel >= b.Channels() {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidChannel, channel, b.Channels())
	}
	if fftSize <= 0 {
		fftSize = nextPowerOf2(b.Frames())
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	n := b.Frames()
	if n > fftSize {
		n = fftSize
	}
	data := b.Data()
	channels := b.Channels()
	for i := 0; i < n; i++ {
		in[i] = complex(data[i*channels+channel], 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	// Real input: keep the non-redundant bins 0..N/2.
	return out[:fftSize/2+1], nil
}

// nextPowerOf2 returns the smallest power of two >= n (minimum 1).
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
