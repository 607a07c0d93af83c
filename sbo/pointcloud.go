package sbo

import (
	"math"

	"github.com/flxai/soft-brownian-offset/simd"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PointCloud is an immutable set of n points of dimension dim stored row-major in one slice.
// Layout: [p0_0..p0_dim-1, p1_0..p1_dim-1, ...]
type PointCloud struct {
	data []float64
	n    int
	dim  int
}

// NewPointCloud copies the rows of x into a new PointCloud. Rows are points.
func NewPointCloud(x mat.Matrix) (*PointCloud, error) {
	if x == nil {
		return nil, errors.Wrap(ErrDegenerateInput, "nil point cloud")
	}
	n, dim := x.Dims()
	if n == 0 || dim == 0 {
		return nil, errors.Wrapf(ErrDegenerateInput, "point cloud has shape %dx%d", n, dim)
	}
	data := make([]float64, n*dim)
	if rm, ok := x.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		for i := 0; i < n; i++ {
			copy(data[i*dim:(i+1)*dim], raw.Data[i*raw.Stride:i*raw.Stride+dim])
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < dim; j++ {
				data[i*dim+j] = x.At(i, j)
			}
		}
	}
	return newPointCloud(data, n, dim)
}

// NewPointCloudFromRows copies rows into a new PointCloud. All rows must have the same length.
func NewPointCloudFromRows(rows [][]float64) (*PointCloud, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrDegenerateInput, "empty point cloud")
	}
	n, dim := len(rows), len(rows[0])
	data := make([]float64, n*dim)
	for i, r := range rows {
		if len(r) != dim {
			return nil, errors.Wrapf(ErrDegenerateInput, "row %d has dimension %d, want %d", i, len(r), dim)
		}
		copy(data[i*dim:(i+1)*dim], r)
	}
	return newPointCloud(data, n, dim)
}

func newPointCloud(data []float64, n, dim int) (*PointCloud, error) {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrDegenerateInput, "non-finite value %v at point %d", v, i/dim)
		}
	}
	return &PointCloud{data: data, n: n, dim: dim}, nil
}

// Len returns the number of points.
func (pc *PointCloud) Len() int {
	return pc.n
}

// Dim returns the dimension of every point.
func (pc *PointCloud) Dim() int {
	return pc.dim
}

// Row copies point i into dst.
func (pc *PointCloud) Row(i int, dst []float64) bool {
	if i < 0 || i >= pc.n || len(dst) != pc.dim {
		return false
	}
	copy(dst, pc.data[i*pc.dim:(i+1)*pc.dim])
	return true
}

// Dense returns a copy of the cloud as an n x dim matrix.
func (pc *PointCloud) Dense() *mat.Dense {
	data := make([]float64, len(pc.data))
	copy(data, pc.data)
	return mat.NewDense(pc.n, pc.dim, data)
}

// MinDistance returns the Euclidean distance from p to its nearest point in the cloud,
// or -1 if p has the wrong dimension.
func (pc *PointCloud) MinDistance(p []float64) float64 {
	if len(p) != pc.dim {
		return -1
	}
	sq, _ := simd.MinSquaredL2Flat(p, pc.data, pc.n)
	return math.Sqrt(sq)
}

// MinDistances returns the distance from every row of y to the cloud.
func (pc *PointCloud) MinDistances(y mat.Matrix) ([]float64, error) {
	r, c := y.Dims()
	if c != pc.dim {
		return nil, errors.Wrapf(ErrDegenerateInput, "points have dimension %d, cloud has %d", c, pc.dim)
	}
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, y)
		out[i] = pc.MinDistance(row)
	}
	return out, nil
}
