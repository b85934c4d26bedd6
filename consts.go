package ibxmsample

import (
	"errors"
	"strings"
)

const (
	FP_SHIFT = 15
	FP_ONE   = 1 << FP_SHIFT
	FP_MASK  = FP_ONE - 1

	/* Constants for the 16-tap fixed-point sinc interpolator. */
	LOG2_FILTER_TAPS    = 4
	FILTER_TAPS         = 1 << LOG2_FILTER_TAPS
	DELAY               = FILTER_TAPS / 2
	LOG2_TABLE_ACCURACY = 4
	TABLE_ACCURACY      = 1 << LOG2_TABLE_ACCURACY
	TABLE_INTERP_SHIFT  = FP_SHIFT - LOG2_TABLE_ACCURACY
	TABLE_INTERP_ONE    = 1 << TABLE_INTERP_SHIFT
	TABLE_INTERP_MASK   = TABLE_INTERP_ONE - 1
	LOG2_NUM_TABLES     = LOG2_FILTER_TAPS - 1
	NUM_TABLES          = 1 << LOG2_NUM_TABLES
)

type Interpolation int

const (
	NEAREST = Interpolation(0)
	LINEAR  = Interpolation(1)
	SINC    = Interpolation(2)
)

var (
	UnknownInterpolation = errors.New("Unknown interpolation")
)

func (this Interpolation) String() string {
	switch this {
	case NEAREST:
		return "nearest"
	case LINEAR:
		return "linear"
	case SINC:
		return "sinc"
	}
	return "unknown"
}

/* Parse the name of a resampling quality ("nearest", "linear" or "sinc"). */
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest", "none":
		return NEAREST, nil
	case "linear":
		return LINEAR, nil
	case "sinc":
		return SINC, nil
	}
	return LINEAR, UnknownInterpolation
}
