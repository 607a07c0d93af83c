// Package sbo generates synthetic out-of-distribution points around an
// in-distribution point cloud with Soft Brownian Offset (SBO).
//
// Each sample starts at a random point of the cloud and takes random steps
// drawn from a Gaussian Hyperspheric Offset (GHO) until its distance to the
// cloud passes a hard or sigmoid-softened threshold.
//
// Quick start:
//
//	ood, err := sbo.SoftBrownianOffset(X, 0.3, 0.2,
//		sbo.WithSamples(256),
//		sbo.WithSoftness(sbo.MustSoft(1)),
//		sbo.WithSeed(42))
//
package sbo
