package planar

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// IsotropicCovariance makes a dims x dims covariance matrix with the variance on the diagonal.
func IsotropicCovariance(dims int, variance float32) *tensor.Dense {
	backing := make([]float32, dims*dims)
	for i := 0; i < dims; i++ {
		backing[i*dims+i] = variance
	}
	return tensor.New(tensor.WithShape(dims, dims), tensor.WithBacking(backing))
}

// cholesky returns the row-major lower triangular L such that L Lᵀ = cov.
// Positive semi-definite matrices are accepted; the columns of zero-variance directions are left at 0.
func cholesky(cov *tensor.Dense) ([]float32, error) {
	shp := cov.Shape()
	if len(shp) != 2 || shp[0] != shp[1] {
		return nil, errors.Errorf("Covariance must be a square matrix. Got shape %v", shp)
	}
	a, ok := cov.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("Covariance must be of Float32. Got %v", cov.Dtype())
	}

	n := shp[0]
	l := make([]float32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i*n+j]
			for k := 0; k < j; k++ {
				sum -= l[i*n+k] * l[j*n+k]
			}

			switch {
			case i == j && sum < -1e-6:
				return nil, errors.Errorf("Covariance is not positive semi-definite (pivot %d is %v)", i, sum)
			case i == j && sum <= 0:
				l[i*n+i] = 0
			case i == j:
				l[i*n+i] = math32.Sqrt(sum)
			case l[j*n+j] == 0:
				l[i*n+j] = 0
			default:
				l[i*n+j] = sum / l[j*n+j]
			}
		}
	}
	return l, nil
}
