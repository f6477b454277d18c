package emit

import (
	"encoding/json"
	"strings"
)

// segment is one decoded mapping: a generated position pointing at an
// original position in source 0.
type segment struct {
	genLine uint32
	genCol  uint32
	srcLine uint32
	srcCol  uint32
}

type mappings struct {
	segs []segment
}

func newMappings() *mappings {
	return &mappings{segs: make([]segment, 0, 64)}
}

func (m *mappings) add(s segment) {
	// writers emit in order; drop exact duplicates at the same generated spot
	if n := len(m.segs); n > 0 {
		last := m.segs[n-1]
		if last.genLine == s.genLine && last.genCol == s.genCol {
			m.segs[n-1] = s
			return
		}
	}
	m.segs = append(m.segs, s)
}

// sourceMap is the version 3 source map document.
type sourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Render serializes the collected segments as a v3 source map with the
// original content inlined.
func (m *mappings) Render(sourcePath string, sourceContent []byte) ([]byte, error) {
	doc := sourceMap{
		Version:        3,
		Sources:        []string{sourcePath},
		SourcesContent: []string{string(sourceContent)},
		Names:          []string{},
		Mappings:       m.encode(),
	}
	return json.Marshal(doc)
}

// encode produces the VLQ `mappings` string. Columns are delta-encoded
// within a line, source line/col across the whole map.
func (m *mappings) encode() string {
	var sb strings.Builder
	var line uint32
	var prevGenCol, prevSrcLine, prevSrcCol int32
	firstOnLine := true

	for _, s := range m.segs {
		for line < s.genLine {
			sb.WriteByte(';')
			line++
			prevGenCol = 0
			firstOnLine = true
		}
		if !firstOnLine {
			sb.WriteByte(',')
		}
		firstOnLine = false

		writeVLQ(&sb, int32(s.genCol)-prevGenCol)
		writeVLQ(&sb, 0) // single source
		writeVLQ(&sb, int32(s.srcLine)-prevSrcLine)
		writeVLQ(&sb, int32(s.srcCol)-prevSrcCol)

		prevGenCol = int32(s.genCol)
		prevSrcLine = int32(s.srcLine)
		prevSrcCol = int32(s.srcCol)
	}
	return sb.String()
}

const vlqChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// writeVLQ emits one base64 VLQ value: sign bit in the lowest position,
// continuation bit in the highest of each sextet.
func writeVLQ(sb *strings.Builder, v int32) {
	u := uint32(v) << 1
	if v < 0 {
		u = uint32(-v)<<1 | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		sb.WriteByte(vlqChars[digit])
		if u == 0 {
			return
		}
	}
}
