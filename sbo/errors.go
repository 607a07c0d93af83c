package sbo

import "github.com/pkg/errors"

var (
	// ErrConfiguration reports parameters that can never produce a valid walk,
	// such as a softness that is neither hard nor a finite positive number.
	ErrConfiguration = errors.New("sbo: invalid configuration")
	// ErrDegenerateInput reports an empty or non-finite point cloud, or
	// non-positive distances and sample counts.
	ErrDegenerateInput = errors.New("sbo: degenerate input")
	// ErrConvergence reports a walk that hit Config.MaxIterations before acceptance.
	ErrConvergence = errors.New("sbo: walk did not converge")
)
