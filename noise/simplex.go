package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Simplex is a fractal wrapper for opensimplex.Noise, initialized with a
// given seed string, persistence, and number of octaves. It is used for
// purely cosmetic effects (hillshade grain, water texture) where the
// hash-lattice contract of the generation pipeline is not required.
type Simplex struct {
	Octaves     int
	Persistence float64
	Amplitudes  []float64
	OS          opensimplex.Noise
}

// NewSimplex returns a new Simplex keyed on the given seed string.
func NewSimplex(octaves int, persistence float64, seed string) *Simplex {
	n := &Simplex{
		Octaves:     octaves,
		Persistence: persistence,
		Amplitudes:  make([]float64, octaves),
		OS:          opensimplex.NewNormalized(FoldSeed64(seed)),
	}

	// Initialize the amplitudes.
	for i := range n.Amplitudes {
		n.Amplitudes[i] = math.Pow(persistence, float64(i))
	}
	return n
}

// Eval2 returns the noise value at the given point.
func (n *Simplex) Eval2(x, y float64) float64 {
	var sum, sumOfAmplitudes float64
	for octave := 0; octave < n.Octaves; octave++ {
		frequency := 1 << octave
		fFreq := float64(frequency)
		sum += n.Amplitudes[octave] * n.OS.Eval2(x*fFreq, y*fFreq)
		sumOfAmplitudes += n.Amplitudes[octave]
	}
	return sum / sumOfAmplitudes
}
