package ibxmsample

import (
	"fmt"
	"io"
	"strings"
)

type Sample struct {
	Name                               string
	Volume, Panning, RelNote, FineTune int

	loopStart, loopLength int
	sampleData            []int16
}

/*
	Prepare a sample for playback.
	The loop is clamped into the data, a ping-pong loop is unrolled into a forward loop
	of twice the length, and FILTER_TAPS frames from the loop start are appended after
	the loop end so the interpolators can read ahead. Frames after the loop end are dropped.
	A sample without a loop should be passed loopStart = len(sampleData), loopLength = 0.
	The returned sample is never modified afterwards.
*/
func NewSample(sampleData []int16, loopStart, loopLength int, pingPong bool) *Sample {
	this := &Sample{Panning: -1}
	sampleLength := len(sampleData)
	// Fix loop if necessary.
	if loopStart < 0 || loopStart > sampleLength {
		loopStart = sampleLength
	}
	if loopLength < 0 || (loopStart+loopLength) > sampleLength {
		loopLength = sampleLength - loopStart
	}
	sampleLength = loopStart + loopLength
	// Compensate for sinc-interpolator delay.
	loopStart += DELAY
	// Allocate new sample.
	newSampleLength := DELAY + sampleLength + FILTER_TAPS
	if pingPong {
		newSampleLength += loopLength
	}
	data := make([]int16, newSampleLength)
	copy(data[DELAY:], sampleData[:sampleLength])
	if pingPong {
		// Calculate reversed loop.
		loopEnd := loopStart + loopLength
		for idx := 0; idx < loopLength; idx++ {
			data[loopEnd+idx] = data[loopEnd-idx-1]
		}
		loopLength *= 2
	}
	// Extend loop for sinc interpolator.
	idx := loopStart + loopLength
	end := idx + FILTER_TAPS
	for ; idx < end; idx++ {
		data[idx] = data[idx-loopLength]
	}
	this.sampleData = data
	this.loopStart = loopStart
	this.loopLength = loopLength
	return this
}

func (this *Sample) Looped() bool {
	return this.loopLength > 1
}

/* Loop start within the padded data, including the DELAY head. */
func (this *Sample) LoopStart() int {
	return this.loopStart
}

func (this *Sample) LoopLength() int {
	return this.loopLength
}

/* Length of the padded sample data. */
func (this *Sample) Len() int {
	return len(this.sampleData)
}

/*
	Map a sample index that has run past the loop end back into the loop.
	Indices before the loop are returned unchanged. Without a loop every index
	past the loop start collapses onto it.
*/
func (this *Sample) NormaliseSampleIdx(sampleIdx int) int {
	loopOffset := sampleIdx - this.loopStart
	if loopOffset > 0 {
		sampleIdx = this.loopStart
		if this.loopLength > 1 {
			sampleIdx += loopOffset % this.loopLength
		}
	}
	return sampleIdx
}

/* Write a human-readable description of the sample, one field per line. */
func (this *Sample) DumpInfo(w io.Writer, prefix string) error {
	var out strings.Builder
	fmt.Fprintf(&out, "%sName: %s\n", prefix, this.Name)
	fmt.Fprintf(&out, "%sVolume: %d\n", prefix, this.Volume)
	if this.Panning >= 0 {
		fmt.Fprintf(&out, "%sPanning: %d\n", prefix, this.Panning)
	}
	fmt.Fprintf(&out, "%sRelative Note: %d\n", prefix, this.RelNote)
	fmt.Fprintf(&out, "%sFine Tune: %d\n", prefix, this.FineTune)
	fmt.Fprintf(&out, "%sLoop Start: %d\n", prefix, this.loopStart)
	fmt.Fprintf(&out, "%sLoop Length: %d\n", prefix, this.loopLength)
	_, err := io.WriteString(w, out.String())
	return err
}

func (this *Sample) String() string {
	var out strings.Builder
	this.DumpInfo(&out, "")
	return out.String()
}
