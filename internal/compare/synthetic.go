package compare

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"github.com/gaitlab/visualgen/internal/motion"
)

// Synthetic data parameters.
const (
	SyntheticSamples = 100
	SyntheticSeed    = 42
	SyntheticNoise   = 0.05 // standard deviation of the estimate error, BW
)

// Recording file names inside the data directory.
const (
	EstimatedFile  = "grf_estimated.mot"
	ForcePlateFile = "grf_force_plate.mot"
)

var syntheticColumns = []string{"time", "ground_force_vy", "ground_force_vx", "ground_force_vz"}

// Pair is a reference recording and the estimate compared against it.
type Pair struct {
	Reference *motion.Table
	Estimate  *motion.Table
	Synthetic bool  // true when the pair was generated rather than read
	Cause     error // why real data was not used; nil unless Synthetic
}

// SyntheticPair builds a deterministic example pair of n samples over
// t in [0, 1]. The estimate is the reference plus gaussian noise drawn from
// a source seeded with seed; the time column is never perturbed.
func SyntheticPair(n int, seed int64) Pair {
	rng := rand.New(rand.NewSource(seed))
	ref := make([][]float64, n)
	est := make([][]float64, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		s := math.Sin(2 * math.Pi * t)
		row := []float64{
			t,
			1.5 * s * s,
			0.3 * math.Sin(4*math.Pi*t),
			0.2 * math.Cos(4*math.Pi*t),
		}
		ref[i] = row
		noisy := make([]float64, len(row))
		noisy[0] = t
		for j := 1; j < len(row); j++ {
			noisy[j] = row[j] + rng.NormFloat64()*SyntheticNoise
		}
		est[i] = noisy
	}

	// Rows are uniform by construction, so NewTable cannot fail.
	r, _ := motion.NewTable(syntheticColumns, ref)
	e, _ := motion.NewTable(syntheticColumns, est)
	return Pair{Reference: r, Estimate: e, Synthetic: true}
}

// DataPaths returns the force plate and estimate paths inside dataDir.
func DataPaths(dataDir string) (reference, estimate string) {
	return filepath.Join(dataDir, ForcePlateFile), filepath.Join(dataDir, EstimatedFile)
}

// Load reads both recordings. When either file is missing it returns the
// synthetic pair with Cause set; any other read error is returned as is.
func Load(referencePath, estimatePath string) (Pair, error) {
	ref, err := motion.ReadFile(referencePath)
	if err != nil {
		return fallback(err)
	}
	est, err := motion.ReadFile(estimatePath)
	if err != nil {
		return fallback(err)
	}
	return Pair{Reference: ref, Estimate: est}, nil
}

func fallback(err error) (Pair, error) {
	if !errors.Is(err, motion.ErrDataUnavailable) {
		return Pair{}, fmt.Errorf("failed to load recordings: %w", err)
	}
	p := SyntheticPair(SyntheticSamples, SyntheticSeed)
	p.Cause = err
	return p, nil
}
