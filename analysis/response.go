package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/vova616/ibxmsample"
	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	InvalidRow  = errors.New("Kernel row out of range")
	InvalidSize = errors.New("Transform size must be even and at least FILTER_TAPS")
)

/*
	Magnitude response of one kernel row of a sinc table.
	The row is zero-padded to size points and the magnitudes of bins 0 to size/2
	are returned, scaled so that a lone coefficient of 32767 has unit gain.
	Bin size/2 is the Nyquist frequency of the sample being resampled.
*/
func Response(table []int16, row, size int) ([]float64, error) {
	if row < 0 || (row+1)*ibxmsample.FILTER_TAPS > len(table) {
		return nil, InvalidRow
	}
	if size < ibxmsample.FILTER_TAPS || size%2 != 0 {
		return nil, InvalidSize
	}
	seq := make([]float64, size)
	for tap, c := range table[row*ibxmsample.FILTER_TAPS : (row+1)*ibxmsample.FILTER_TAPS] {
		seq[tap] = float64(c) / 32767
	}
	coeffs := fourier.NewFFT(size).Coefficients(nil, seq)
	resp := make([]float64, len(coeffs))
	for i, c := range coeffs {
		resp[i] = cmplx.Abs(c)
	}
	return resp, nil
}

/*
	Fraction of the Nyquist frequency at which a response first falls below
	half of its DC gain, or 1 if it never does.
*/
func Cutoff(resp []float64) float64 {
	if len(resp) < 2 {
		return 1
	}
	half := resp[0] / 2
	for i, m := range resp {
		if m < half {
			return float64(i) / float64(len(resp)-1)
		}
	}
	return 1
}

type TableSummary struct {
	Table  int
	DCGain float64
	Cutoff float64
}

/* DC gain and cutoff of the first kernel row of every sinc table. */
func Summarise(size int) ([]TableSummary, error) {
	summary := make([]TableSummary, ibxmsample.NUM_TABLES)
	for tableIdx := range summary {
		resp, e := Response(ibxmsample.SincTable(tableIdx), 0, size)
		if e != nil {
			return nil, e
		}
		summary[tableIdx] = TableSummary{tableIdx, resp[0], Cutoff(resp)}
	}
	return summary, nil
}
