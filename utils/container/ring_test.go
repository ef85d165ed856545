package container_test

import (
	"testing"

	"github.com/kcc-smart-traffic/corridor-sim/utils/container"
	"github.com/stretchr/testify/assert"
)

func TestRingInit(t *testing.T) {
	r := container.NewRing[int32](3)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 3, r.Cap())
	assert.Empty(t, r.Values())
}

func TestRingPushAndRead(t *testing.T) {
	r := container.NewRing[int32](3)

	// test: 未满时按序追加

	r.Push(1)
	r.Push(2)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, int32(1), r.At(0))
	assert.Equal(t, int32(2), r.At(1))
	assert.Equal(t, int32(2), r.FromEnd(0))
	assert.Equal(t, int32(1), r.FromEnd(1))

	// test: 写满后覆盖最旧元素

	r.Push(3)
	r.Push(4)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int32{2, 3, 4}, r.Values())
	assert.Equal(t, int32(2), r.At(0))
	assert.Equal(t, int32(4), r.FromEnd(0))

	r.Push(5)
	r.Push(6)
	assert.Equal(t, []int32{4, 5, 6}, r.Values())

	// test: reset

	r.Reset()
	assert.Equal(t, 0, r.Len())
	r.Push(7)
	assert.Equal(t, []int32{7}, r.Values())
}

func TestRingPanics(t *testing.T) {
	assert.Panics(t, func() { container.NewRing[int](0) })
	r := container.NewRing[int](2)
	assert.Panics(t, func() { r.At(0) })
	r.Push(1)
	assert.Panics(t, func() { r.At(1) })
	assert.Panics(t, func() { r.FromEnd(1) })
}
