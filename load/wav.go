package load

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/h2non/filetype"
	"github.com/vova616/ibxmsample"
)

var InvalidWAV = errors.New("Not a valid WAV file")

// smpl loop type for alternating (ping-pong) loops.
const smplLoopAlternating = 1

func IsWAV(reader *bufio.Reader) bool {
	header, e := reader.Peek(12)
	if e != nil {
		return false
	}
	return filetype.Is(header, "wav")
}

/*
	Decode a PCM WAV file. The INFO title becomes the sample name, the first
	smpl loop becomes the sample loop and the smpl unity note shifts the tuning.
*/
func DecodeWAV(reader *bufio.Reader) (*ibxmsample.Sample, error) {
	buff, e := io.ReadAll(reader)
	if e != nil {
		return nil, e
	}
	dec := wav.NewDecoder(bytes.NewReader(buff))
	if !dec.IsValidFile() {
		return nil, InvalidWAV
	}
	dec.ReadMetadata()
	if e = dec.Err(); e != nil {
		return nil, fmt.Errorf("reading wav metadata: %w", e)
	}
	if e = dec.Rewind(); e != nil {
		return nil, fmt.Errorf("rewinding wav: %w", e)
	}
	pcm, e := dec.FullPCMBuffer()
	if e != nil {
		return nil, fmt.Errorf("reading wav data: %w", e)
	}
	data := mixInts(pcm.Data, int(dec.NumChans), int(dec.BitDepth), true)

	name := ""
	loopStart, loopLength := len(data), 0
	pingPong := false
	unityNote := 0
	if meta := dec.Metadata; meta != nil {
		name = meta.Title
		if smpl := meta.SamplerInfo; smpl != nil {
			unityNote = int(smpl.MIDIUnityNote)
			if len(smpl.Loops) > 0 {
				loop := smpl.Loops[0]
				// The loop end is the last frame played, not one past it.
				loopStart = int(loop.Start)
				loopLength = int(loop.End) - int(loop.Start) + 1
				pingPong = loop.Type == smplLoopAlternating
			}
		}
	}
	sample, e := newSample(name, data, int(dec.SampleRate), loopStart, loopLength, pingPong)
	if e != nil {
		return nil, e
	}
	// MIDI note 60 is key 49.
	if unityNote > 0 && unityNote < 128 {
		sample.RelNote += 60 - unityNote
	}
	return sample, nil
}
