package ibxmsample

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(n int, value int16) []int16 {
	data := make([]int16, n)
	for i := range data {
		data[i] = value
	}
	return data
}

func centredVoice(data []int16, loopStart, loopLength, freq int) *Voice {
	s := NewSample(data, loopStart, loopLength, false)
	s.Volume = 64
	voice := NewVoice(s)
	voice.SetFrequency(freq)
	return voice
}

func TestNewRenderer_Validates(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(7999, 256)
	assert.ErrorIs(t, err, UnsupportedSamplingRate)
	_, err = NewRenderer(128001, 256)
	assert.ErrorIs(t, err, UnsupportedSamplingRate)
	_, err = NewRenderer(48000, 0)
	assert.ErrorIs(t, err, InvalidBlockLength)

	r, err := NewRenderer(48000, 1024)
	require.NoError(t, err)
	assert.Equal(t, 48000, r.SampleRate())
	assert.Equal(t, 1024, r.BlockLength())
	assert.Equal(t, LINEAR, r.Interpolation())
	assert.Equal(t, (1024+65)*4, r.MixBufferLength())
}

func TestRenderer_GetAudioSilence(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(8000, 64)
	require.NoError(t, err)
	buf := filled(r.MixBufferLength()/2, 99)
	assert.Equal(t, 64, r.GetAudio(buf))
	assert.Equal(t, make([]int32, 128), buf[:128])
}

func TestRenderer_GetAudioConstant(t *testing.T) {
	t.Parallel()

	for _, interp := range []Interpolation{NEAREST, LINEAR} {
		r, err := NewRenderer(8000, 64)
		require.NoError(t, err)
		r.SetInterpolation(interp)
		voice := centredVoice(constant(100, 1000), 0, 100, 8000)
		buf := make([]int32, r.MixBufferLength())

		r.GetAudio(buf, voice)
		// The first block fades in from silence.
		assert.Less(t, buf[0], int32(496), interp.String())

		r.GetAudio(buf, voice)
		for i := 0; i < 64; i++ {
			assert.Equal(t, int32(496), buf[i*2], "%s left %d", interp, i)
			assert.Equal(t, int32(500), buf[i*2+1], "%s right %d", interp, i)
		}

		r.Reset()
		r.GetAudio(buf, voice)
		assert.Less(t, buf[0], int32(496), interp.String())
	}
}

func TestRenderer_GetAudioBlockShorterThanRamp(t *testing.T) {
	t.Parallel()

	// At 48 kHz the crossfade lasts 26 frames.
	for _, interp := range []Interpolation{NEAREST, LINEAR} {
		r, err := NewRenderer(48000, 4)
		require.NoError(t, err)
		r.SetInterpolation(interp)
		voice := centredVoice(constant(100, 1000), 0, 100, 48000)
		buf := make([]int32, r.MixBufferLength())

		r.GetAudio(buf, voice)
		for block := 1; block < 20; block++ {
			r.GetAudio(buf, voice)
			for i := 0; i < 4; i++ {
				assert.Equal(t, int32(496), buf[i*2], "%s block %d left %d", interp, block, i)
				assert.Equal(t, int32(500), buf[i*2+1], "%s block %d right %d", interp, block, i)
			}
		}
	}
}

func TestRenderer_VolumeRampKeepsTail(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(48000, 4)
	require.NoError(t, err)
	mix := make([]int32, r.MixBufferLength())
	for i := range mix {
		mix[i] = 1000
	}
	r.volumeRamp(mix, 4)
	assert.Zero(t, mix[0])
	assert.Less(t, mix[8], int32(1000))
	for i, v := range r.rampBuf {
		assert.Equal(t, int32(1000), v, "tail %d", i)
	}
}

func TestRenderer_GetAudioAdvancesVoices(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(8000, 100)
	require.NoError(t, err)
	voice := centredVoice(wave(1000), 1000, 0, 4000)
	buf := make([]int32, r.MixBufferLength())
	r.GetAudio(buf, voice)
	idx, frac := voice.Position()
	assert.Equal(t, 50, idx)
	assert.Zero(t, frac)
}

func TestClamp16(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 32767, clamp16(40000))
	assert.Equal(t, -32768, clamp16(-40000))
	assert.Equal(t, 1234, clamp16(1234))
}

func readWav(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	dec = wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return dec, buf.Data
}

func TestRenderer_DumpStopsWhenVoicesEnd(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(8000, 256)
	require.NoError(t, err)
	voice := centredVoice(wave(1000), 1000, 0, 8000)

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	written, err := r.Dump(f, 100000, voice)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, 1024, written)
	assert.True(t, voice.Ended())

	dec, data := readWav(t, path)
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Len(t, data, written*2)
}

func TestRenderer_DumpFrameLimit(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(22050, 256)
	require.NoError(t, err)
	r.SetInterpolation(SINC)
	voice := centredVoice(wave(500), 100, 400, 11025)

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	written, err := r.Dump(f, 300, voice)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, 300, written)

	_, data := readWav(t, path)
	require.Len(t, data, 600)
	for _, x := range data {
		assert.LessOrEqual(t, x, 32767)
		assert.GreaterOrEqual(t, x, -32768)
	}
}

func TestRenderer_DumpNothing(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(8000, 256)
	require.NoError(t, err)
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer f.Close()
	written, err := r.Dump(f, 0)
	require.NoError(t, err)
	assert.Zero(t, written)
}
