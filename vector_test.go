package seqbuf

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqbuf/internal/mem"
	"github.com/hupe1980/seqbuf/resource"
	"github.com/hupe1980/seqbuf/testutil"
)

func TestVector_PushAt(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{0, 1, 2, 3, 7, 64, 1000} {
		values := rng.Ints(n, 1<<20)
		v := New[int]()
		for _, x := range values {
			require.NoError(t, v.Push(x))
		}

		assert.Equal(t, n, v.Size())
		for i, want := range values {
			got, err := v.At(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestVector_GrowthPolicy(t *testing.T) {
	v := New[int]()
	assert.Equal(t, 0, v.Capacity())

	for i := 0; i < 200; i++ {
		grows := v.Size() == v.Capacity()
		require.NoError(t, v.Push(i))
		if grows {
			assert.Equal(t, 2*v.Size(), v.Capacity(), "after push %d", i)
		}
		assert.LessOrEqual(t, v.Size(), v.Capacity())
	}
}

func TestVector_ShrinkToFit(t *testing.T) {
	rng := testutil.NewRNG(7)

	v := New[int]()
	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			require.NoError(t, v.Push(i))
		case 2:
			if !v.Empty() {
				require.NoError(t, v.Erase(rng.Intn(v.Size())))
			}
		case 3:
			require.NoError(t, v.Insert(rng.Intn(v.Size()+1), i))
		}

		if i%50 == 0 {
			before := slices.Clone(v.Data())
			require.NoError(t, v.ShrinkToFit())
			assert.Equal(t, v.Size(), v.Capacity())
			assert.Equal(t, before, v.Data())
		}
	}

	v.Clear()
	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 0, v.Capacity())
}

func TestVector_InsertEraseRoundTrip(t *testing.T) {
	base := []int{4, 8, 15, 16, 23, 42}

	for pos := 0; pos <= len(base); pos++ {
		v := Of(base...)
		require.NoError(t, v.Insert(pos, 99))
		assert.Equal(t, len(base)+1, v.Capacity())

		got, err := v.At(pos)
		require.NoError(t, err)
		assert.Equal(t, 99, got)

		require.NoError(t, v.Erase(pos))
		assert.Equal(t, base, v.Data(), "pos %d", pos)
		assert.Equal(t, len(base), v.Capacity())
	}
}

func TestVector_SwapScenario(t *testing.T) {
	rng := testutil.NewRNG(1)
	pushed := rng.Ints(9, 256)

	vec := New[int]()
	vec2 := Of(5, 3, 1)
	for _, x := range pushed {
		require.NoError(t, vec.Push(x))
	}
	capBefore, cap2Before := vec.Capacity(), vec2.Capacity()
	dataBefore := &vec.Data()[0]

	vec.Swap(vec2)

	assert.Equal(t, "[ 5, 3, 1 ]", vec.String())
	assert.Equal(t, pushed, vec2.Data())
	assert.Equal(t, cap2Before, vec.Capacity())
	assert.Equal(t, capBefore, vec2.Capacity())
	assert.Same(t, dataBefore, &vec2.Data()[0], "swap must not copy elements")
}

func TestVector_EditSequence(t *testing.T) {
	vec := Of(1, 5, 10, 9)
	require.NoError(t, vec.ShrinkToFit())
	assert.Equal(t, 4, vec.Capacity())

	require.NoError(t, vec.AssignValues(9, 10, 5, 1))
	assert.Equal(t, "[ 9, 10, 5, 1 ]", vec.String())

	vec2 := Of(5, 1, 6, 10, 8)
	require.NoError(t, vec.AssignRange(vec2, 2, vec2.Size()-1))
	assert.Equal(t, "[ 6, 10 ]", vec.String())

	require.NoError(t, vec.Insert(vec.Size(), 88))
	assert.Equal(t, "[ 6, 10, 88 ]", vec.String())

	vec.Clear()
	require.NoError(t, vec.ShrinkToFit())
	require.NoError(t, vec.AssignValues(1, 5, 10, 99, 199))
	require.NoError(t, vec.Resize(vec.Size()/2))
	assert.Equal(t, "[ 1, 5 ]", vec.String())
	assert.Equal(t, 5, vec.Capacity())

	require.NoError(t, vec.Append(vec2))
	assert.Equal(t, "[ 1, 5, 5, 1, 6, 10, 8 ]", vec.String())
	assert.Equal(t, 14, vec.Capacity())

	require.NoError(t, vec.Erase(3))
	assert.Equal(t, "[ 1, 5, 5, 6, 10, 8 ]", vec.String())
	require.NoError(t, vec.EraseRange(1, 4))
	assert.Equal(t, "[ 1, 10, 8 ]", vec.String())

	maxVal := slices.Max(vec.Data())
	assert.Equal(t, 10, maxVal)

	require.NoError(t, vec2.CopyFrom(vec))
	require.NoError(t, vec.AssignValues(1, 1, 1, 1))
	assert.Equal(t, "[ 1, 10, 8 ]", vec2.String())
	assert.Equal(t, "[ 1, 1, 1, 1 ]", vec.String())

	vec.MoveFrom(vec2)
	assert.Equal(t, "[  ]", vec2.String())
	assert.Equal(t, 0, vec2.Capacity())
	assert.Equal(t, "[ 1, 10, 8 ]", vec.String())

	require.NoError(t, vec2.AssignValues(5, 5, 1, 6, 7))
	require.NoError(t, vec.InsertRange(1, vec2, 1, 3))
	assert.Equal(t, "[ 1, 5, 1, 10, 8 ]", vec.String())
}

func TestVector_EmptyFailures(t *testing.T) {
	v := New[string]()

	assert.ErrorIs(t, v.Erase(0), ErrEmptyContainer)
	assert.ErrorIs(t, v.EraseRange(0, 0), ErrEmptyContainer)

	_, err := v.Pop()
	assert.ErrorIs(t, err, ErrEmptyContainer)
	_, err = v.Front()
	assert.ErrorIs(t, err, ErrEmptyContainer)
	_, err = v.Back()
	assert.ErrorIs(t, err, ErrEmptyContainer)

	// Any index on an empty vector is out of bounds.
	for _, i := range []int{0, 1, -1, int(^uint(0) >> 1)} {
		_, err = v.At(i)
		assert.ErrorIs(t, err, ErrIndexOutOfBounds)
		assert.NotErrorIs(t, err, ErrEmptyContainer)
	}

	assert.Equal(t, 0, v.Size())
	assert.Equal(t, 0, v.Capacity())
	assert.Equal(t, "[  ]", v.String())
}

func TestVector_EraseEmptyKeepsCapacity(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.Reserve(8))
	v.Clear()

	assert.ErrorIs(t, v.Erase(0), ErrEmptyContainer)
	assert.Equal(t, 8, v.Capacity())
	assert.Equal(t, 0, v.Size())
}

func TestVector_Bounds(t *testing.T) {
	v := Of(10, 20, 30)

	_, err := v.At(3)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Index)
	assert.Equal(t, 3, ie.Size)

	assert.ErrorIs(t, v.Set(-1, 0), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.Insert(4, 0), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.Erase(3), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.EraseRange(1, 4), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.EraseRange(2, 1), ErrInvalidArgument)
	assert.ErrorIs(t, v.AssignRange(v, 0, 9), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.InsertRange(0, v, -1, 2), ErrIndexOutOfBounds)

	assert.Equal(t, []int{10, 20, 30}, v.Data())
}

func TestVector_Accessors(t *testing.T) {
	v := Of("a", "b", "c")

	front, err := v.Front()
	require.NoError(t, err)
	assert.Equal(t, "a", front)

	back, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, "c", back)

	require.NoError(t, v.Set(1, "B"))
	*v.Index(2) = "C"
	assert.Equal(t, []string{"a", "B", "C"}, v.Data())

	last, err := v.Pop()
	require.NoError(t, err)
	assert.Equal(t, "C", last)
	assert.Equal(t, 2, v.Size())
	assert.Equal(t, "", *v.Index(2), "popped slot is cleared")
}

func TestVector_Assign(t *testing.T) {
	v := New[int]()

	require.NoError(t, v.Assign(4, 7))
	assert.Equal(t, []int{7, 7, 7, 7}, v.Data())
	assert.Equal(t, 4, v.Capacity())

	require.NoError(t, v.Assign(0, 1))
	assert.True(t, v.Empty())

	assert.ErrorIs(t, v.Assign(-1, 0), ErrInvalidArgument)

	src := Of(1, 2, 3, 4, 5)
	require.NoError(t, src.AssignRange(src, 1, 4))
	assert.Equal(t, []int{2, 3, 4}, src.Data())
}

func TestVector_InsertForms(t *testing.T) {
	v := Of(1, 5)

	require.NoError(t, v.InsertValues(1, 2, 3, 4))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Data())
	assert.Equal(t, 5, v.Capacity())

	require.NoError(t, v.InsertValues(0))
	assert.Equal(t, 5, v.Size())

	require.NoError(t, v.InsertRange(5, v, 0, 2))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 1, 2}, v.Data())

	require.NoError(t, v.Emplace(0, func(slot *int) { *slot = 0 }))
	require.NoError(t, v.EmplaceBack(func(slot *int) { *slot = 9 }))
	require.NoError(t, v.EmplaceBack(nil))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 1, 2, 9, 0}, v.Data())
}

func TestVector_EmplaceBuildsInPlace(t *testing.T) {
	type point struct{ x, y int }

	v := New[point]()
	require.NoError(t, v.EmplaceBack(func(p *point) {
		p.x, p.y = 1, 2
	}))
	require.NoError(t, v.Emplace(0, func(p *point) {
		p.x = 3
	}))

	assert.Equal(t, []point{{3, 0}, {1, 2}}, v.Data())
}

func TestVector_ResizeReserve(t *testing.T) {
	v := New[int]()

	require.NoError(t, v.Resize(10))
	assert.Equal(t, 10, v.Size())
	assert.Equal(t, 20, v.Capacity())

	*v.Index(9) = 5
	require.NoError(t, v.Resize(4))
	assert.Equal(t, 20, v.Capacity())
	require.NoError(t, v.Resize(10))
	assert.Equal(t, 0, *v.Index(9), "regrown slots are zero")

	require.NoError(t, v.Reserve(5))
	assert.Equal(t, 20, v.Capacity(), "reserve never shrinks")
	require.NoError(t, v.Reserve(33))
	assert.Equal(t, 33, v.Capacity())
	assert.Equal(t, 10, v.Size())

	assert.ErrorIs(t, v.Resize(-1), ErrInvalidArgument)
	assert.ErrorIs(t, v.Reserve(-1), ErrInvalidArgument)
}

func TestVector_WithSize(t *testing.T) {
	v, err := WithSize[float64](3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, v.Data())
	assert.Equal(t, 6, v.Capacity())

	v, err = WithSize[float64](0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Capacity())

	_, err = WithSize[float64](-2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVector_CloneMove(t *testing.T) {
	v := New[int]()
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}

	c, err := v.Clone()
	require.NoError(t, err)
	assert.Equal(t, v.Data(), c.Data())
	assert.Equal(t, v.Capacity(), c.Capacity())

	require.NoError(t, c.Set(0, 100))
	got, _ := v.At(0)
	assert.Equal(t, 0, got, "clone is deep")

	var dst Vector[int]
	dst.MoveFrom(c)
	assert.Equal(t, []int{100, 1, 2, 3, 4}, dst.Data())
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, 0, c.Capacity())

	dst.MoveFrom(&dst)
	assert.Equal(t, 5, dst.Size())

	empty := New[int]()
	ec, err := empty.Clone()
	require.NoError(t, err)
	assert.True(t, ec.Empty())
}

func TestVector_Append(t *testing.T) {
	v := Of(1, 2)
	require.NoError(t, v.Append(Of(3)))
	assert.Equal(t, []int{1, 2, 3}, v.Data())
	assert.Equal(t, 6, v.Capacity())

	require.NoError(t, v.Append(v))
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, v.Data())

	require.NoError(t, v.Append(New[int]()))
	assert.Equal(t, 6, v.Size())
}

func TestVector_Iterators(t *testing.T) {
	v := Of("x", "y", "z")

	var idx []int
	var vals []string
	for i, s := range v.All() {
		idx = append(idx, i)
		vals = append(vals, s)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []string{"x", "y", "z"}, vals)

	assert.Equal(t, []string{"x", "y", "z"}, slices.Collect(v.Values()))

	var rev []string
	for _, s := range v.Backward() {
		rev = append(rev, s)
	}
	assert.Equal(t, []string{"z", "y", "x"}, rev)

	count := 0
	for range v.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)

	// Positions survive reallocation during iteration.
	seen := 0
	for i := range v.All() {
		if i == 0 {
			require.NoError(t, v.Reserve(100))
		}
		seen++
	}
	assert.Equal(t, 3, seen)
}

func TestVector_Equal(t *testing.T) {
	assert.True(t, Equal(Of(1, 2, 3), Of(1, 2, 3)))
	assert.False(t, Equal(Of(1, 2, 3), Of(1, 2)))
	assert.True(t, Equal(New[int](), Of[int]()))
}

func TestVector_String(t *testing.T) {
	assert.Equal(t, "[  ]", New[int]().String())
	assert.Equal(t, "[ 42 ]", Of(42).String())
	assert.Equal(t, "[ a, b ]", Of("a", "b").String())
}

func TestVector_ZeroValue(t *testing.T) {
	var v Vector[int]
	require.NoError(t, v.Push(1))
	require.NoError(t, v.Push(2))
	assert.Equal(t, "[ 1, 2 ]", v.String())
}

func TestVector_AllocationFailure(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
	metrics := &BasicMetricsCollector{}
	v := New[int64](WithMemoryController(rc), WithMetricsCollector(metrics))

	// 1 -> cap 2 (16B), 3 -> cap 6 (48B). Growing to cap 14 needs 112B
	// while the old 48B are still held.
	for i := int64(0); i < 6; i++ {
		require.NoError(t, v.Push(i))
	}
	assert.Equal(t, int64(48), rc.MemoryUsage())

	err := v.Push(6)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.NotErrorIs(t, err, ErrIndexOutOfBounds)
	assert.NotErrorIs(t, err, ErrEmptyContainer)

	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5}, v.Data())
	assert.Equal(t, 6, v.Capacity())
	assert.Equal(t, int64(48), rc.MemoryUsage())

	err = v.Insert(0, -1)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 6, v.Size())

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.AllocFailures)
	assert.Equal(t, int64(2), stats.GrowCount)

	v.Release()
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, 0, v.Capacity())
}

func TestVector_TooLarge(t *testing.T) {
	v := New[int64]()

	err := v.Reserve(v.MaxSize() + 1)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.ErrorIs(t, err, mem.ErrTooLarge)
	assert.Equal(t, 0, v.Capacity())
}

func TestVector_SwapKeepsReservations(t *testing.T) {
	rcA := resource.NewController(resource.Config{})
	rcB := resource.NewController(resource.Config{})

	a := New[int32](WithMemoryController(rcA))
	b := New[int32](WithMemoryController(rcB))
	require.NoError(t, a.Reserve(10))
	require.NoError(t, b.Reserve(3))

	a.Swap(b)
	a.Release()
	b.Release()

	assert.Equal(t, int64(0), rcA.MemoryUsage())
	assert.Equal(t, int64(0), rcB.MemoryUsage())
}

func TestVector_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 8})
	v := New[int64](WithLogger(logger.WithContainer("ids")), WithMemoryController(rc))

	require.NoError(t, v.Reserve(1))
	err := v.Reserve(2)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "buffer reallocated")
	assert.Contains(t, out, "reason=reserve")
	assert.Contains(t, out, "container=ids")
	assert.Contains(t, out, "buffer allocation failed")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestVector_NilLogger(t *testing.T) {
	v := New[int](WithLogger(nil), WithMetricsCollector(nil))
	require.NoError(t, v.Push(1))
	assert.Equal(t, 1, v.Size())
}

func TestVector_ErrorsAreDistinct(t *testing.T) {
	errs := []error{ErrEmptyContainer, ErrIndexOutOfBounds, ErrAllocationFailure, ErrInvalidArgument}
	for i, a := range errs {
		for j, b := range errs {
			assert.Equal(t, i == j, errors.Is(a, b))
		}
	}
}

func BenchmarkVector_Push(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v := New[int]()
		for j := 0; j < 1024; j++ {
			_ = v.Push(j)
		}
	}
}
