// Package gen 提供压测用的分布内（ID）点云生成
package gen

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, 0xda3e39cb94b95bdb)
}

// UniformCube 生成 n 个 dim 维、各分量服从 U(-1, 1) 的点
func UniformCube(n, dim int, seed uint64) *mat.Dense {
	u := distuv.Uniform{Min: -1, Max: 1, Src: newSource(seed)}
	data := make([]float64, n*dim)
	for i := range data {
		data[i] = u.Rand()
	}
	return mat.NewDense(n, dim, data)
}

// Moons 生成两个交错半圆（与 sklearn make_moons 相同的几何形状），noise 为高斯噪声标准差
func Moons(n int, noise float64, seed uint64) *mat.Dense {
	nOuter := n / 2
	nInner := n - nOuter
	out := mat.NewDense(n, 2, nil)
	for i := 0; i < nOuter; i++ {
		t := linspace(i, nOuter)
		out.Set(i, 0, math.Cos(t))
		out.Set(i, 1, math.Sin(t))
	}
	for i := 0; i < nInner; i++ {
		t := linspace(i, nInner)
		out.Set(nOuter+i, 0, 1-math.Cos(t))
		out.Set(nOuter+i, 1, 1-math.Sin(t)-0.5)
	}
	if noise > 0 {
		g := distuv.Normal{Mu: 0, Sigma: noise, Src: newSource(seed)}
		raw := out.RawMatrix().Data
		for i := range raw {
			raw[i] += g.Rand()
		}
	}
	return out
}

// linspace 返回 [0, π] 上 n 个等距点中的第 i 个
func linspace(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return math.Pi * float64(i) / float64(n-1)
}
