package rand

import (
	"fmt"
	"math"
	"time"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seeded random number generator.
type Source struct {
	src  xrand.Source
	seed uint64
}

// NewSource returns random source seeded with seed.
// If seed is 0 the source is seeded from the current time.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Source{
		src:  xrand.NewSource(seed),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uint64 draws a non-zero uint64, e.g. to seed another source.
func (s *Source) Uint64() uint64 {
	for {
		if v := s.src.Uint64(); v != 0 {
			return v
		}
	}
}

// Normal draws a single sample from Normal distribution with mean mu and variance v.
// It panics if v is negative.
func (s *Source) Normal(mu, v float64) float64 {
	if v < 0 {
		panic(fmt.Sprintf("rand: negative variance %v", v))
	}
	if v == 0 {
		return mu
	}

	return distuv.Normal{Mu: mu, Sigma: math.Sqrt(v), Src: s.src}.Rand()
}

// Uniform draws a single sample from [min, max) uniform distribution.
func (s *Source) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// Bernoulli returns true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return distuv.Bernoulli{P: p, Src: s.src}.Rand() == 1
}

// WithCovN draws n random samples from a zero-mean Normal (aka Gaussian) distribution with covariance cov.
// It returns matrix which contains the randomly generated samples stored in its columns.
// It fails with error if n is non-positive or if SVD factorization of cov fails.
func (s *Source) WithCovN(cov mat.Symmetric, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	// Use SVD instead of Cholesky as Cholesky can be numerically unstable if cov is (almost) singular
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	U := new(mat.Dense)
	svd.UTo(U)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	U.Mul(U, diag)

	norm := distuv.UnitNormal
	norm.Src = s.src

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = norm.Rand()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(U, samples)

	return samples, nil
}
