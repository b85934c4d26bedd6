package ibxmsample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInterpolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Interpolation
		wantErr error
	}{
		{"nearest", NEAREST, nil},
		{"none", NEAREST, nil},
		{"Linear", LINEAR, nil},
		{" sinc ", SINC, nil},
		{"cubic", LINEAR, UnknownInterpolation},
		{"", LINEAR, UnknownInterpolation},
	}
	for _, tt := range tests {
		got, err := ParseInterpolation(tt.name)
		assert.Equal(t, tt.want, got, "%q", tt.name)
		assert.ErrorIs(t, err, tt.wantErr, "%q", tt.name)
	}
}

func TestInterpolation_String(t *testing.T) {
	t.Parallel()

	for _, interp := range []Interpolation{NEAREST, LINEAR, SINC} {
		got, err := ParseInterpolation(interp.String())
		assert.NoError(t, err)
		assert.Equal(t, interp, got)
	}
	assert.Equal(t, "unknown", Interpolation(7).String())
}
