package sbo_test

import (
	"fmt"

	"github.com/flxai/soft-brownian-offset/sbo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func ExampleSoftBrownianOffset() {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	})
	ood, err := sbo.SoftBrownianOffset(X, 0.3, 0.2, sbo.WithSamples(5), sbo.WithSeed(42))
	if err != nil {
		panic(err)
	}
	pc, _ := sbo.NewPointCloud(X)
	dists, _ := pc.MinDistances(ood)
	r, c := ood.Dims()
	allFar := true
	for _, d := range dists {
		allFar = allFar && d > 0.3
	}
	fmt.Println(r, c, allFar)
	// Output: 5 2 true
}

func ExampleGaussianHypersphericOffset() {
	offsets, err := sbo.GaussianHypersphericOffset(3, sbo.DefaultDim, sbo.DefaultMu, 0, nil)
	if err != nil {
		panic(err)
	}
	r, c := offsets.Dims()
	fmt.Println(r, c, fmt.Sprintf("%.6f", floats.Norm(offsets.RawRowView(0), 2)))
	// Output: 3 3 4.000000
}
