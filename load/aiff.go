package load

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/vova616/ibxmsample"
)

var InvalidAIFF = errors.New("Not a valid AIFF file")

var (
	aiffForm = []byte("FORM")
	aiffType = []byte("AIFF")
	aifcType = []byte("AIFC")
)

func IsAIFF(reader *bufio.Reader) bool {
	header, e := reader.Peek(12)
	if e != nil {
		return false
	}
	return bytes.Equal(header[0:4], aiffForm) &&
		(bytes.Equal(header[8:12], aiffType) || bytes.Equal(header[8:12], aifcType))
}

/* Decode an uncompressed AIFF file. AIFF carries no loop, so the sample plays once. */
func DecodeAIFF(reader *bufio.Reader) (*ibxmsample.Sample, error) {
	buff, e := io.ReadAll(reader)
	if e != nil {
		return nil, e
	}
	dec := aiff.NewDecoder(bytes.NewReader(buff))
	if !dec.IsValidFile() {
		return nil, InvalidAIFF
	}
	dec.ReadInfo()
	if e := dec.Err(); e != nil {
		return nil, fmt.Errorf("reading aiff header: %w", e)
	}
	format := dec.Format()
	if format == nil {
		return nil, InvalidAIFF
	}
	pcm, e := readPCM(dec, format)
	if e != nil {
		return nil, e
	}
	data := mixInts(pcm, format.NumChannels, int(dec.BitDepth), false)
	return newSample("", data, format.SampleRate, len(data), 0, false)
}

type pcmReader interface {
	PCMBuffer(buf *audio.IntBuffer) (int, error)
}

// Read interleaved samples until the decoder runs dry.
func readPCM(dec pcmReader, format *audio.Format) ([]int, error) {
	var pcm []int
	buf := &audio.IntBuffer{Data: make([]int, 4096), Format: format}
	for {
		n, e := dec.PCMBuffer(buf)
		if e != nil && e != io.EOF {
			return nil, fmt.Errorf("reading aiff data: %w", e)
		}
		pcm = append(pcm, buf.Data[:n]...)
		if e == io.EOF || n == 0 {
			return pcm, nil
		}
	}
}
