package gen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestUniformCube(t *testing.T) {
	x := UniformCube(100, 7, 42)
	r, c := x.Dims()
	assert.Equal(t, 100, r)
	assert.Equal(t, 7, c)
	for _, v := range x.RawMatrix().Data {
		assert.True(t, v >= -1 && v < 1, "value %v out of range", v)
	}
	assert.True(t, mat.Equal(x, UniformCube(100, 7, 42)))
	assert.False(t, mat.Equal(x, UniformCube(100, 7, 43)))
}

func TestMoonsNoiseless(t *testing.T) {
	x := Moons(48, 0, 1)
	r, c := x.Dims()
	assert.Equal(t, 48, r)
	assert.Equal(t, 2, c)
	// Outer moon lies on the unit circle, inner moon on the circle around (1, 0.5).
	for i := 0; i < 24; i++ {
		assert.InDelta(t, 1, math.Hypot(x.At(i, 0), x.At(i, 1)), 1e-12)
	}
	for i := 24; i < 48; i++ {
		assert.InDelta(t, 1, math.Hypot(x.At(i, 0)-1, x.At(i, 1)-0.5), 1e-12)
	}
}

func TestMoonsNoisyDeterministic(t *testing.T) {
	a := Moons(49, 0.1, 7)
	b := Moons(49, 0.1, 7)
	assert.True(t, mat.Equal(a, b))
	assert.False(t, mat.Equal(a, Moons(49, 0, 7)))
	r, _ := a.Dims()
	assert.Equal(t, 49, r)
}
