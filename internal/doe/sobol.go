package doe

import (
	"fmt"
	"math/bits"
)

// sobolParam holds the primitive polynomial (degree s, encoded coefficients a)
// and initial direction integers for one Sobol dimension beyond the first.
type sobolParam struct {
	s uint
	a uint32
	m []uint32
}

// Direction-number parameters for dimensions 2..28 (dimension 1 is the van
// der Corput sequence). Every m_k is odd and below 2^k, as the recurrence
// requires.
var sobolParams = [...]sobolParam{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
	{5, 4, []uint32{1, 1, 5, 5, 5}},
	{5, 7, []uint32{1, 1, 7, 11, 19}},
	{5, 11, []uint32{1, 1, 5, 1, 1}},
	{5, 13, []uint32{1, 1, 1, 3, 11}},
	{5, 14, []uint32{1, 3, 5, 5, 31}},
	{6, 1, []uint32{1, 3, 3, 9, 7, 49}},
	{6, 13, []uint32{1, 1, 1, 15, 21, 21}},
	{6, 16, []uint32{1, 3, 1, 13, 27, 49}},
	{6, 19, []uint32{1, 1, 1, 15, 7, 5}},
	{6, 22, []uint32{1, 3, 1, 15, 13, 25}},
	{6, 25, []uint32{1, 1, 5, 5, 19, 61}},
	{7, 1, []uint32{1, 3, 7, 11, 23, 15, 103}},
	{7, 4, []uint32{1, 3, 7, 13, 13, 15, 69}},
	{7, 7, []uint32{1, 1, 3, 13, 7, 35, 63}},
	{7, 8, []uint32{1, 3, 5, 9, 1, 25, 53}},
	{7, 14, []uint32{1, 3, 1, 13, 9, 35, 107}},
	{7, 19, []uint32{1, 1, 5, 11, 27, 29, 31}},
	{7, 21, []uint32{1, 1, 7, 3, 23, 7, 101}},
	{7, 28, []uint32{1, 3, 5, 9, 7, 61, 95}},
	{7, 31, []uint32{1, 1, 7, 15, 1, 41, 79}},
}

// maxSobolDim is the highest supported sequence dimensionality.
const maxSobolDim = len(sobolParams) + 1

const sobolBits = 32

// sobolSequence is a gray-code Sobol low-discrepancy sequence. It is fully
// deterministic: no seeding, no scrambling.
type sobolSequence struct {
	dim   int
	v     [][]uint32 // direction numbers, dim x sobolBits
	x     []uint32
	index uint32
}

func newSobolSequence(dim int) (*sobolSequence, error) {
	if dim < 1 || dim > maxSobolDim {
		return nil, fmt.Errorf("sobol sequence supports 1..%d dimensions, got %d", maxSobolDim, dim)
	}

	s := &sobolSequence{
		dim: dim,
		v:   make([][]uint32, dim),
		x:   make([]uint32, dim),
	}

	// Dimension 1: van der Corput, v_k = 2^(32-k-1).
	s.v[0] = make([]uint32, sobolBits)
	for k := 0; k < sobolBits; k++ {
		s.v[0][k] = 1 << (sobolBits - 1 - k)
	}

	for j := 1; j < dim; j++ {
		p := sobolParams[j-1]
		deg := int(p.s)

		m := make([]uint32, sobolBits)
		copy(m, p.m)
		for k := deg; k < sobolBits; k++ {
			m[k] = m[k-deg] ^ (m[k-deg] << p.s)
			for i := 1; i < deg; i++ {
				if (p.a>>(deg-1-i))&1 == 1 {
					m[k] ^= m[k-i] << uint(i)
				}
			}
		}

		s.v[j] = make([]uint32, sobolBits)
		for k := 0; k < sobolBits; k++ {
			s.v[j][k] = m[k] << (sobolBits - 1 - k)
		}
	}

	return s, nil
}

// next writes the next point of the sequence into out, each coordinate in
// [0,1). The first point is the origin.
func (s *sobolSequence) next(out []float64) {
	const scale = 1.0 / (1 << sobolBits)
	for j := 0; j < s.dim; j++ {
		out[j] = float64(s.x[j]) * scale
	}

	// Gray-code update: flip the direction number of the lowest zero bit.
	c := bits.TrailingZeros32(^s.index)
	for j := 0; j < s.dim; j++ {
		s.x[j] ^= s.v[j][c]
	}
	s.index++
}
