package load

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/vova616/ibxmsample"
)

func IsMP3(reader *bufio.Reader) bool {
	header, e := reader.Peek(3)
	if e != nil {
		return false
	}
	return filetype.Is(header, "mp3")
}

/* Decode an MP3 file, taking the sample name from its ID3 title. */
func DecodeMP3(reader *bufio.Reader) (*ibxmsample.Sample, error) {
	buff, e := io.ReadAll(reader)
	if e != nil {
		return nil, e
	}
	name := ""
	if meta, e := tag.ReadFrom(bytes.NewReader(buff)); e == nil {
		name = meta.Title()
	}
	dec, e := gomp3.NewDecoder(bytes.NewReader(buff))
	if e != nil {
		return nil, fmt.Errorf("decoding mp3: %w", e)
	}
	// Always 16-bit little-endian stereo.
	pcm, e := io.ReadAll(dec)
	if e != nil {
		return nil, fmt.Errorf("decoding mp3: %w", e)
	}
	frames := make([]int, len(pcm)/2)
	for i := range frames {
		frames[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}
	data := mixInts(frames, 2, 16, false)
	return newSample(name, data, dec.SampleRate(), len(data), 0, false)
}
