package buffer

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-audio/internal/testutil"
)

const bufferSize = 4096

// fillRamp sets sample (i, k) = i + k, the fixture used across tests.
func fillRamp(b *Buffer) {
	for i := 0; i < b.Frames(); i++ {
		row := b.Frame(i)
		for k := range row {
			row[k] = float64(i + k)
		}
	}
}

func TestAllocMono(t *testing.T) {
	b := New(bufferSize, 1)
	if b.Frames() != bufferSize {
		t.Fatalf("Frames() = %d, want %d", b.Frames(), bufferSize)
	}
	if b.Samples() != bufferSize {
		t.Fatalf("Samples() = %d, want %d", b.Samples(), bufferSize)
	}
	if b.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", b.Channels())
	}
	if !b.IsAllocated() {
		t.Fatal("buffer should be allocated")
	}
	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 after Alloc", i, v)
		}
	}
}

func TestAllocStereo(t *testing.T) {
	b := New(bufferSize, 2)
	if b.Frames() != bufferSize {
		t.Fatalf("Frames() = %d, want %d", b.Frames(), bufferSize)
	}
	if b.Samples() != bufferSize*2 {
		t.Fatalf("Samples() = %d, want %d", b.Samples(), bufferSize*2)
	}
	if b.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", b.Channels())
	}
}

func TestAllocZeroProduct(t *testing.T) {
	b := New(100, 0)
	if b.Frames() != 100 || b.Channels() != 0 {
		t.Fatalf("counts = (%d,%d), want (100,0)", b.Frames(), b.Channels())
	}
	if b.IsAllocated() {
		t.Fatal("zero-product buffer should hold no storage")
	}
	if b.Samples() != 0 {
		t.Fatalf("Samples() = %d, want 0", b.Samples())
	}
}

func TestAllocDiscardsPriorContents(t *testing.T) {
	b := New(8, 2)
	fillRamp(b)
	b.Alloc(4, 3)
	if b.Frames() != 4 || b.Channels() != 3 {
		t.Fatalf("counts = (%d,%d), want (4,3)", b.Frames(), b.Channels())
	}
	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 after re-Alloc", i, v)
		}
	}
}

func TestFree(t *testing.T) {
	b := New(bufferSize, 2)
	b.Free()
	if b.Frames() != 0 || b.Channels() != 0 || b.Samples() != 0 {
		t.Fatalf("counts after Free = (%d,%d,%d), want zeros", b.Frames(), b.Channels(), b.Samples())
	}
	if b.IsAllocated() {
		t.Fatal("buffer should report not-allocated after Free")
	}
}

func TestFreeViewLeavesMemoryUntouched(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	v := View(backing, 2, 2)
	v.Free()
	if v.IsView() {
		t.Fatal("freed buffer should return to owning mode")
	}
	testutil.RequireSliceNearlyEqual(t, backing, []float64{1, 2, 3, 4}, 0)
}

func TestZeroValueIsEmptyOwning(t *testing.T) {
	var b Buffer
	if b.IsAllocated() || b.IsView() || b.Frames() != 0 || b.Channels() != 0 {
		t.Fatal("zero value should be the empty owning state")
	}
}

func TestViewSharesMemory(t *testing.T) {
	backing := []float64{1, 2, 3, 4, 5, 6}
	v := View(backing, 3, 2)
	if !v.IsView() || !v.IsAllocated() {
		t.Fatal("view should be allocated and report view mode")
	}

	// Contents are wrapped, not zeroed.
	if v.Frame(1)[0] != 3 {
		t.Fatalf("Frame(1)[0] = %v, want 3", v.Frame(1)[0])
	}

	v.Frame(0)[1] = 42
	if backing[1] != 42 {
		t.Fatal("mutation through view should reach the backing slice")
	}
	backing[4] = -7
	if v.Frame(2)[0] != -7 {
		t.Fatal("mutation of the backing slice should be visible in the view")
	}
}

func TestViewTooSmallPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undersized view slice")
		}
	}()
	View(make([]float64, 3), 2, 2)
}

func TestNegativeCountsPanic(t *testing.T) {
	for name, fn := range map[string]func(){
		"alloc": func() { New(-1, 2) },
		"view":  func() { View(nil, 1, -1) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic for negative count", name)
				}
			}()
			fn()
		}()
	}
}

func TestCloneIndependence(t *testing.T) {
	a := New(16, 2)
	fillRamp(a)

	b := a.Clone()
	if b.Frames() != a.Frames() || b.Channels() != a.Channels() {
		t.Fatal("clone shape mismatch")
	}
	testutil.RequireSliceNearlyEqual(t, b.Data(), a.Data(), 0)

	b.Frame(3)[1] = 99
	if a.Frame(3)[1] == 99 {
		t.Fatal("clone must not share storage with the source")
	}
}

func TestCloneOfViewIsOwning(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	v := View(backing, 2, 2)
	c := v.Clone()
	if c.IsView() {
		t.Fatal("clone of a view should own its storage")
	}
	c.Frame(0)[0] = 100
	if backing[0] != 1 {
		t.Fatal("clone must not alias the viewed memory")
	}
}

func TestCopyFromReplacesContents(t *testing.T) {
	dst := New(4, 1)
	fillRamp(dst)
	src := New(2, 3)
	fillRamp(src)

	dst.CopyFrom(src)
	if dst.Frames() != 2 || dst.Channels() != 3 {
		t.Fatalf("counts = (%d,%d), want (2,3)", dst.Frames(), dst.Channels())
	}
	testutil.RequireSliceNearlyEqual(t, dst.Data(), src.Data(), 0)
}

func TestCopyFromSelfIsNoOp(t *testing.T) {
	b := New(4, 2)
	fillRamp(b)
	want := append([]float64(nil), b.Data()...)
	b.CopyFrom(b)
	testutil.RequireSliceNearlyEqual(t, b.Data(), want, 0)
}

func TestMoveFromTransfers(t *testing.T) {
	a := New(8, 2)
	fillRamp(a)
	want := append([]float64(nil), a.Data()...)

	var b Buffer
	b.MoveFrom(a)

	if b.Frames() != 8 || b.Channels() != 2 {
		t.Fatalf("counts = (%d,%d), want (8,2)", b.Frames(), b.Channels())
	}
	testutil.RequireSliceNearlyEqual(t, b.Data(), want, 0)

	if a.IsAllocated() || a.Frames() != 0 || a.Channels() != 0 {
		t.Fatal("move source should be reset to the empty state")
	}
}

func TestMoveFromKeepsViewFlag(t *testing.T) {
	backing := []float64{1, 2}
	v := View(backing, 2, 1)

	var b Buffer
	b.MoveFrom(v)
	if !b.IsView() {
		t.Fatal("moving a view should transfer view mode")
	}
	if v.IsView() || v.IsAllocated() {
		t.Fatal("move source should be empty and owning")
	}

	b.Frame(0)[0] = 9
	if backing[0] != 9 {
		t.Fatal("moved view should still alias the original memory")
	}
}

func TestMoveFromSelfIsNoOp(t *testing.T) {
	b := New(4, 1)
	fillRamp(b)
	b.MoveFrom(b)
	if !b.IsAllocated() || b.Frames() != 4 {
		t.Fatal("self-move should leave the buffer untouched")
	}
}

func TestClearAll(t *testing.T) {
	b := New(bufferSize, 2)
	fillRamp(b)
	b.Clear()
	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("sample %d = %v after Clear", i, v)
		}
	}
}

func TestClearRange(t *testing.T) {
	b := New(16, 2)
	for i := range b.Data() {
		b.Data()[i] = 1
	}

	b.ClearRange(5, 6)

	for i := 0; i < b.Frames(); i++ {
		for k, v := range b.Frame(i) {
			want := 1.0
			if i == 5 {
				want = 0.0
			}
			if v != want {
				t.Fatalf("frame %d channel %d = %v, want %v", i, k, v, want)
			}
		}
	}
}

func TestClearRangeEndSentinel(t *testing.T) {
	b := New(8, 1)
	for i := range b.Data() {
		b.Data()[i] = 1
	}
	b.ClearRange(4, -1)
	for i := 0; i < 8; i++ {
		want := 1.0
		if i >= 4 {
			want = 0.0
		}
		if b.Frame(i)[0] != want {
			t.Fatalf("frame %d = %v, want %v", i, b.Frame(i)[0], want)
		}
	}
}

func TestClearUnallocatedIsNoOp(t *testing.T) {
	var b Buffer
	b.Clear()
	b.ClearRange(0, -1)
}

func TestApplyGain(t *testing.T) {
	b := View([]float64{1, 2, 3, 4}, 2, 2)
	b.ApplyGain(0.5)
	testutil.RequireSliceNearlyEqual(t, b.Data(), []float64{0.5, 1, 1.5, 2}, 0)
}

func TestApplyGainRangeUsesSampleIndices(t *testing.T) {
	// Sample (not frame) indices: [1, 3) crosses the frame boundary of a
	// stereo buffer.
	b := View([]float64{1, 2, 3, 4}, 2, 2)
	b.ApplyGainRange(2, 1, 3)
	testutil.RequireSliceNearlyEqual(t, b.Data(), []float64{1, 4, 6, 4}, 0)
}

func TestApplyGainEmptyIsNoOp(t *testing.T) {
	var b Buffer
	b.ApplyGain(2)
}

func TestPeakFloorsAtZero(t *testing.T) {
	b := View([]float64{-1, -0.5, -2, -0.25}, 4, 1)
	if got := b.Peak(0); got != 0 {
		t.Fatalf("Peak of all-negative channel = %v, want the 0.0 floor", got)
	}
}

func TestPeakPerChannel(t *testing.T) {
	left := []float64{0.1, 0.9, 0.3}
	right := []float64{0.8, 0.2, 0.4}
	b := View(testutil.Interleave(left, right), 3, 2)

	if got := b.Peak(0); got != 0.9 {
		t.Fatalf("Peak(0) = %v, want 0.9", got)
	}
	if got := b.Peak(1); got != 0.8 {
		t.Fatalf("Peak(1) = %v, want 0.8", got)
	}
}

func TestPeakRange(t *testing.T) {
	b := View([]float64{0.1, 0.9, 0.3, 0.5}, 4, 1)
	if got := b.PeakRange(0, 2, -1); got != 0.5 {
		t.Fatalf("PeakRange(0, 2, -1) = %v, want 0.5", got)
	}
	if got := b.PeakRange(0, 0, 1); got != 0.1 {
		t.Fatalf("PeakRange(0, 0, 1) = %v, want 0.1", got)
	}
}

func TestPeakInvalidChannelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid channel")
		}
	}()
	New(4, 2).Peak(2)
}

func TestFrameAccess(t *testing.T) {
	b := New(4, 3)
	fillRamp(b)
	testutil.RequireSliceNearlyEqual(t, b.Frame(2), []float64{2, 3, 4}, 0)

	b.Frame(2)[1] = -1
	if b.Data()[2*3+1] != -1 {
		t.Fatal("Frame row should alias the backing storage")
	}
}

func TestFrameOutOfRangePanics(t *testing.T) {
	b := New(4, 1)
	for name, fn := range map[string]func(){
		"high":        func() { b.Frame(4) },
		"negative":    func() { b.Frame(-1) },
		"unallocated": func() { new(Buffer).Frame(0) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestString(t *testing.T) {
	if got := New(4, 2).String(); got != "buffer.Buffer(4 frames, 2 channels, owning)" {
		t.Fatalf("String() = %q", got)
	}
	if got := View(make([]float64, 2), 2, 1).String(); got != "buffer.Buffer(2 frames, 1 channels, view)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestDump(t *testing.T) {
	b := View([]float64{0, 1, 2, 3}, 2, 2)
	var sb strings.Builder
	b.Dump(&sb)
	want := "0.000000 1.000000\n2.000000 3.000000\n"
	if sb.String() != want {
		t.Fatalf("Dump output = %q, want %q", sb.String(), want)
	}
}
