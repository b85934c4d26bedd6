package ibxmsample

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	UnsupportedSamplingRate = errors.New("Unsupported sampling rate")
	InvalidBlockLength      = errors.New("Block length must be positive")
)

/*
	Renderer mixes voices into fixed-length blocks of interleaved stereo.
	Voices are mixed one after another at twice the output rate and then
	downsampled, with a short crossfade from the previous block to hide clicks.
*/
type Renderer struct {
	rampBuf       []int32
	nextRamp      []int32
	interpolation Interpolation
	sampleRate    int
	blockLen      int
}

func NewRenderer(sampleRate, blockLen int) (*Renderer, error) {
	if sampleRate < 8000 || sampleRate > 128000 {
		return nil, UnsupportedSamplingRate
	}
	if blockLen <= 0 {
		return nil, InvalidBlockLength
	}
	this := &Renderer{}
	this.sampleRate = sampleRate
	this.blockLen = blockLen
	this.interpolation = LINEAR
	this.rampBuf = make([]int32, 128)
	this.nextRamp = make([]int32, 128)
	return this, nil
}

func (this *Renderer) SampleRate() int {
	return this.sampleRate
}

func (this *Renderer) BlockLength() int {
	return this.blockLen
}

/* Set the resampling quality to one of NEAREST, LINEAR, or SINC. */
func (this *Renderer) SetInterpolation(interpolation Interpolation) {
	this.interpolation = interpolation
}

func (this *Renderer) Interpolation() Interpolation {
	return this.interpolation
}

/* Returns the length of the buffer required by GetAudio(). */
func (this *Renderer) MixBufferLength() int {
	return (this.blockLen + 65) * 4
}

/*
	Generate one block of audio and advance the voices.
	The number of stereo frames placed into outputBuf is returned.
*/
func (this *Renderer) GetAudio(outputBuf []int32, voices ...*Voice) int {
	blockLen := this.blockLen
	// Clear output buffer.
	end := (blockLen + 65) * 4
	for idx := 0; idx < end; idx++ {
		outputBuf[idx] = 0
	}
	// Resample.
	for _, voice := range voices {
		voice.Resample(outputBuf, 0, (blockLen+65)*2, this.sampleRate*2, this.interpolation)
		voice.UpdateSampleIdx(blockLen*2, this.sampleRate*2)
	}
	this.downsample(outputBuf, blockLen+64)
	this.volumeRamp(outputBuf, blockLen)
	return blockLen
}

/* Clear the crossfade state, as when starting a new render. */
func (this *Renderer) Reset() {
	for idx := range this.rampBuf {
		this.rampBuf[idx] = 0
	}
}

/*
	Crossfade the start of the block from the frames rendered past the end of
	the previous one. The ramp lasts up to 64 frames and may be longer than
	the block, so the tail for the next block is taken before fading.
*/
func (this *Renderer) volumeRamp(mixBuf []int32, blockLen int) {
	copy(this.nextRamp, mixBuf[blockLen*2:])
	rampRate := 256 * 2048 / this.sampleRate
	for idx, a1 := 0, 0; a1 < 256; idx, a1 = idx+2, a1+rampRate {
		a2 := 256 - a1
		mixBuf[idx] = (mixBuf[idx]*int32(a1) + this.rampBuf[idx]*int32(a2)) >> 8
		mixBuf[idx+1] = (mixBuf[idx+1]*int32(a1) + this.rampBuf[idx+1]*int32(a2)) >> 8
	}
	this.rampBuf, this.nextRamp = this.nextRamp, this.rampBuf
}

func (this *Renderer) downsample(buf []int32, count int) {
	// 2:1 downsampling with simple but effective anti-aliasing. Buf must contain count * 2 + 1 stereo samples.
	outLen := count * 2
	for inIdx, outIdx := 0, 0; outIdx < outLen; inIdx, outIdx = inIdx+4, outIdx+2 {
		buf[outIdx] = (buf[inIdx] >> 2) + (buf[inIdx+2] >> 1) + (buf[inIdx+4] >> 2)
		buf[outIdx+1] = (buf[inIdx+1] >> 2) + (buf[inIdx+3] >> 1) + (buf[inIdx+5] >> 2)
	}
}

func allEnded(voices []*Voice) bool {
	for _, voice := range voices {
		if !voice.Ended() {
			return false
		}
	}
	return true
}

func clamp16(x int32) int {
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return int(x)
}

/*
	Render up to frames stereo frames as a 16-bit WAV file.
	Rendering stops early once every voice has ended. Returns the number of frames written.
*/
func (this *Renderer) Dump(w io.WriteSeeker, frames int, voices ...*Voice) (int, error) {
	if frames <= 0 {
		return 0, nil
	}
	enc := wav.NewEncoder(w, this.sampleRate, 16, 2, 1)
	data := make([]int32, this.MixBufferLength())
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: this.sampleRate},
		Data:           make([]int, this.blockLen*2),
		SourceBitDepth: 16,
	}
	written := 0
	for written < frames {
		n := this.GetAudio(data, voices...)
		if n > frames-written {
			n = frames - written
		}
		buf.Data = buf.Data[:n*2]
		for j := range buf.Data {
			buf.Data[j] = clamp16(data[j])
		}
		if err := enc.Write(buf); err != nil {
			return written, fmt.Errorf("writing audio: %w", err)
		}
		written += n
		if allEnded(voices) {
			break
		}
	}
	if err := enc.Close(); err != nil {
		return written, fmt.Errorf("closing wav: %w", err)
	}
	return written, nil
}
