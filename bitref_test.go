package seqbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitRef(t *testing.T) {
	b := mustParse(t, "0101")

	r, err := b.RefAt(0)
	require.NoError(t, err)
	assert.False(t, r.Get())
	assert.Equal(t, "0", r.String())

	r.Set(true)
	assert.Equal(t, "1101", b.ToString())

	r.Flip()
	assert.Equal(t, "0101", b.ToString())

	r.Assign(b.Ref(1))
	assert.Equal(t, "1101", b.ToString())
	assert.Equal(t, "1", r.String())

	assert.False(t, r.Not())
	assert.False(t, r.And(false))
	assert.True(t, r.Or(false))
	assert.False(t, r.Xor(true))
	assert.True(t, r.Xor(false))

	r.AndAssign(false)
	assert.Equal(t, "0101", b.ToString())
	r.OrAssign(true)
	assert.Equal(t, "1101", b.ToString())
	r.XorAssign(true)
	assert.Equal(t, "0101", b.ToString())
	r.XorAssign(false)
	r.AndAssign(true)
	r.OrAssign(false)
	assert.Equal(t, "0101", b.ToString())

	assert.False(t, r.Set(true).Flip().Get())
}

func TestBitRef_SharesWord(t *testing.T) {
	b := NewBitVector[uint16]()
	require.NoError(t, b.Assign(20, false))

	low := b.Ref(3)
	high := b.Ref(17)
	low.Set(true)
	high.Set(true)

	assert.Equal(t, 2, b.Count())
	assert.Equal(t, []uint16{1 << 12, 1 << 14}, b.Data())

	low.Set(false)
	assert.Equal(t, 1, b.Count())
}

func TestBitRef_Edges(t *testing.T) {
	b := mustParse(t, "10")

	front, err := b.FrontRef()
	require.NoError(t, err)
	assert.True(t, front.Get())

	back, err := b.BackRef()
	require.NoError(t, err)
	assert.False(t, back.Get())

	back.Assign(front)
	assert.Equal(t, "11", b.ToString())

	_, err = b.RefAt(2)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	empty := NewBitVector[uint8]()
	_, err = empty.FrontRef()
	assert.ErrorIs(t, err, ErrEmptyContainer)
	_, err = empty.BackRef()
	assert.ErrorIs(t, err, ErrEmptyContainer)
	_, err = empty.RefAt(0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}
