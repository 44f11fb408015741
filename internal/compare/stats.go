package compare

import (
	"fmt"
	"math"

	"github.com/gaitlab/visualgen/internal/motion"
)

// timeTolerance is the largest difference between two time stamps that
// still counts as the same sample instant.
const timeTolerance = 1e-6

// Channel names one compared column of a motion table.
type Channel struct {
	Index int
	Name  string
}

// DefaultChannels are the three force components in the order they are
// stored after the time column.
var DefaultChannels = []Channel{
	{Index: 1, Name: "Vertical"},
	{Index: 2, Name: "Anterior-Posterior"},
	{Index: 3, Name: "Medial-Lateral"},
}

// Stats holds the agreement between two signals.
type Stats struct {
	RMSE float64
	R    float64 // Pearson correlation; NaN when either signal is constant
}

// ChannelStats pairs a channel with its statistics.
type ChannelStats struct {
	Channel
	Stats
}

// RMSE returns sqrt(mean((a-b)^2)). It returns NaN for empty or unequal
// inputs.
func RMSE(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a)))
}

// Pearson returns the correlation coefficient of a and b. It returns NaN
// for empty or unequal inputs and when either input has zero variance.
func Pearson(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return math.NaN()
	}
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= float64(n)
	mb /= float64(n)

	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return math.NaN()
	}
	r := cov / math.Sqrt(va*vb)
	// Rounding can push |r| a hair past 1 for identical inputs.
	return math.Max(-1, math.Min(1, r))
}

// Compare computes per-channel statistics of est against ref. Both tables
// must have the same number of rows and the same time column.
func Compare(ref, est *motion.Table, channels []Channel) ([]ChannelStats, error) {
	if err := aligned(ref, est); err != nil {
		return nil, err
	}
	out := make([]ChannelStats, 0, len(channels))
	for _, ch := range channels {
		a, err := ref.Column(ch.Index)
		if err != nil {
			return nil, fmt.Errorf("failed to read reference %s: %w", ch.Name, err)
		}
		b, err := est.Column(ch.Index)
		if err != nil {
			return nil, fmt.Errorf("failed to read estimate %s: %w", ch.Name, err)
		}
		out = append(out, ChannelStats{
			Channel: ch,
			Stats:   Stats{RMSE: RMSE(a, b), R: Pearson(a, b)},
		})
	}
	return out, nil
}

func aligned(ref, est *motion.Table) error {
	if ref.Len() == 0 || est.Len() == 0 {
		return ErrNoData
	}
	if ref.Len() != est.Len() {
		return fmt.Errorf("%w: %d reference rows, %d estimated rows", ErrShapeMismatch, ref.Len(), est.Len())
	}
	ta, tb := ref.Time(), est.Time()
	for i := range ta {
		if math.Abs(ta[i]-tb[i]) > timeTolerance {
			return fmt.Errorf("%w: row %d at t=%g vs t=%g", ErrShapeMismatch, i, ta[i], tb[i])
		}
	}
	return nil
}

// FormatStat renders a statistic with three decimals, "nan" when undefined.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.3f", v)
}
