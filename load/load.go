package load

import (
	"bufio"
	"errors"
	"io"
	"math"

	"github.com/vova616/ibxmsample"
)

var (
	UnsupportedFormat = errors.New("Unsupported format")
	NoAudio           = errors.New("No audio data")
)

type format struct {
	name   string
	check  func(r *bufio.Reader) bool
	decode func(r *bufio.Reader) (*ibxmsample.Sample, error)
}

var formats []format

/* Add a format to the end of the list tried by Decode. */
func RegisterFormat(name string, check func(r *bufio.Reader) bool, decode func(r *bufio.Reader) (*ibxmsample.Sample, error)) {
	formats = append(formats, format{name, check, decode})
}

func init() {
	RegisterFormat("wav", IsWAV, DecodeWAV)
	RegisterFormat("aiff", IsAIFF, DecodeAIFF)
	RegisterFormat("ogg", IsOgg, DecodeOgg)
	RegisterFormat("mp3", IsMP3, DecodeMP3)
}

/* Names of the registered formats, in the order they are tried. */
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return names
}

/*
	Decode an audio file into a sample ready for playback.
	The sample is tuned so that key 49 (C-4) plays it at its recorded rate.
*/
func Decode(r io.Reader) (*ibxmsample.Sample, error) {
	reader := bufio.NewReader(r)
	for _, f := range formats {
		if f.check(reader) {
			return f.decode(reader)
		}
	}
	return nil, UnsupportedFormat
}

/*
	Relative note and fine tune (1/128 semitone) that make key 49 play
	a sample recorded at sampleRate at its original pitch.
*/
func Tuning(sampleRate int) (relNote, fineTune int) {
	if sampleRate <= 0 {
		return 0, 0
	}
	tune := int(math.Floor(12*128*math.Log2(float64(sampleRate)/8363) + 0.5))
	return tune >> 7, tune & 0x7F
}

func newSample(name string, data []int16, sampleRate, loopStart, loopLength int, pingPong bool) (*ibxmsample.Sample, error) {
	if len(data) == 0 {
		return nil, NoAudio
	}
	sample := ibxmsample.NewSample(data, loopStart, loopLength, pingPong)
	sample.Name = name
	sample.Volume = 64
	sample.RelNote, sample.FineTune = Tuning(sampleRate)
	return sample, nil
}

// Interleaved integer frames of the given bit depth to mono 16-bit.
func mixInts(data []int, channels, bitDepth int, unsigned8 bool) []int16 {
	if channels < 1 {
		channels = 1
	}
	out := make([]int16, len(data)/channels)
	for i := range out {
		sum := 0
		for c := 0; c < channels; c++ {
			x := data[i*channels+c]
			switch bitDepth {
			case 8:
				if unsigned8 {
					x -= 128
				}
				x <<= 8
			case 24:
				x >>= 8
			case 32:
				x >>= 16
			}
			sum += x
		}
		out[i] = int16(clamp16(sum / channels))
	}
	return out
}

// Interleaved float frames in [-1, 1] to mono 16-bit.
func mixFloats(data []float32, channels int) []int16 {
	if channels < 1 {
		channels = 1
	}
	out := make([]int16, len(data)/channels)
	for i := range out {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(data[i*channels+c])
		}
		out[i] = int16(clamp16(int(math.Floor(sum/float64(channels)*32767 + 0.5))))
	}
	return out
}

func clamp16(x int) int {
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return x
}
