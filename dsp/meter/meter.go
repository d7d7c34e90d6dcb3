package meter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audio/dsp/buffer"
	"github.com/cwbudde/algo-audio/dsp/core"
)

// Meter accumulates per-channel absolute peak and RMS statistics over
// the buffers fed to Process.
//
// Unlike buffer.Peak, which keeps the historical zero-floor behavior,
// the meter tracks the absolute sample magnitude.
type Meter struct {
	channels int

	peaks      []float64
	sumSquares []float64
	samples    int64
}

// NewMeter creates a new level meter with the given options.
func NewMeter(opts ...Option) *Meter {
	cfg := ApplyOptions(opts...)

	m := &Meter{
		channels:   cfg.Channels,
		peaks:      make([]float64, cfg.Channels),
		sumSquares: make([]float64, cfg.Channels),
	}
	return m
}

// Channels returns the channel count the meter was configured for.
func (m *Meter) Channels() int { return m.channels }

// Reset clears all accumulated peak and RMS state.
func (m *Meter) Reset() {
	for i := range m.peaks {
		m.peaks[i] = 0
		m.sumSquares[i] = 0
	}
	m.samples = 0
}

// Process accumulates statistics from b. The buffer's channel count
// must match the meter's.
func (m *Meter) Process(b *buffer.Buffer) {
	if b.Channels() != m.channels {
		panic(fmt.Sprintf("meter: buffer has %d channels, meter expects %d", b.Channels(), m.channels))
	}
	data := b.Data()
	for i, v := range data {
		ch := i % m.channels
		if a := math.Abs(v); a > m.peaks[ch] {
			m.peaks[ch] = a
		}
		m.sumSquares[ch] += v * v
	}
	m.samples += int64(b.Frames())
}

// Peak returns the highest absolute sample value seen on the channel.
func (m *Meter) Peak(channel int) float64 {
	return m.peaks[channel]
}

// RMS returns the root mean square level of the channel over everything
// processed since the last Reset. Returns 0 before any samples arrive.
func (m *Meter) RMS(channel int) float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSquares[channel] / float64(m.samples))
}

// PeakDB returns the channel peak in dBFS.
func (m *Meter) PeakDB(channel int) float64 {
	return core.LinearToDB(m.Peak(channel))
}

// RMSDB returns the channel RMS level in dBFS.
func (m *Meter) RMSDB(channel int) float64 {
	return core.LinearToDB(m.RMS(channel))
}
