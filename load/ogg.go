package load

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"github.com/jfreymuth/oggvorbis"
	"github.com/vova616/ibxmsample"
)

func IsOgg(reader *bufio.Reader) bool {
	header, e := reader.Peek(4)
	if e != nil {
		return false
	}
	return filetype.Is(header, "ogg")
}

/*
	Decode an Ogg Vorbis file. The TITLE comment becomes the sample name and
	the LOOPSTART and LOOPLENGTH comments, in frames, become the sample loop.
*/
func DecodeOgg(reader *bufio.Reader) (*ibxmsample.Sample, error) {
	dec, e := oggvorbis.NewReader(reader)
	if e != nil {
		return nil, fmt.Errorf("decoding ogg: %w", e)
	}
	channels := dec.Channels()
	var pcm []float32
	buf := make([]float32, 4096*channels)
	for {
		n, e := dec.Read(buf)
		pcm = append(pcm, buf[:n]...)
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, fmt.Errorf("decoding ogg: %w", e)
		}
	}
	data := mixFloats(pcm, channels)

	comments := parseComments(dec.CommentHeader().Comments)
	loopStart, loopLength := len(data), 0
	if start, e := strconv.Atoi(comments["LOOPSTART"]); e == nil {
		loopStart = start
		loopLength = len(data) - start
		if length, e := strconv.Atoi(comments["LOOPLENGTH"]); e == nil {
			loopLength = length
		}
	}
	return newSample(comments["TITLE"], data, dec.SampleRate(), loopStart, loopLength, false)
}

// Vorbis comment field names are case-insensitive.
func parseComments(comments []string) map[string]string {
	fields := make(map[string]string, len(comments))
	for _, comment := range comments {
		key, value, ok := strings.Cut(comment, "=")
		if !ok {
			continue
		}
		key = strings.ToUpper(key)
		if _, seen := fields[key]; !seen {
			fields[key] = strings.TrimSpace(value)
		}
	}
	return fields
}
