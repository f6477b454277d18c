package emit

import (
	"bytes"

	"sodagql/internal/source"
)

// Writer accumulates emitted output, copying untouched regions straight from
// the source file and tracking generated positions for the source map.
type Writer struct {
	sf  *source.File
	buf []byte

	line uint32 // 0-based generated line
	col  uint32 // 0-based generated column

	maps *mappings // nil when no source map is requested
}

// NewWriter creates a writer over one source file. When withMap is set,
// every copy and synthesized write records a mapping segment.
func NewWriter(sf *source.File, withMap bool) *Writer {
	w := &Writer{
		sf:  sf,
		buf: make([]byte, 0, len(sf.Content)+64),
	}
	if withMap {
		w.maps = newMappings()
	}
	return w
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) advance(chunk []byte) {
	n := bytes.Count(chunk, []byte{'\n'})
	if n == 0 {
		w.col += uint32(len(chunk))
		return
	}
	w.line += uint32(n)
	w.col = uint32(len(chunk) - bytes.LastIndexByte(chunk, '\n') - 1)
}

// CopyRange copies source bytes verbatim. Each output line that begins
// inside the copy gets a mapping back to the matching original position.
func (w *Writer) CopyRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(w.sf.Content) {
		end = len(w.sf.Content)
	}
	if start >= end {
		return
	}
	chunk := w.sf.Content[start:end]

	if w.maps == nil {
		w.buf = append(w.buf, chunk...)
		w.advance(chunk)
		return
	}

	// copy line by line so every output line maps to its original start
	for len(chunk) > 0 {
		w.mapOffset(uint32(start))
		nl := bytes.IndexByte(chunk, '\n')
		if nl < 0 {
			w.buf = append(w.buf, chunk...)
			w.advance(chunk)
			return
		}
		w.buf = append(w.buf, chunk[:nl+1]...)
		w.advance(chunk[:nl+1])
		chunk = chunk[nl+1:]
		start += nl + 1
	}
}

// CopySpan copies the span's bytes from the original source.
func (w *Writer) CopySpan(sp source.Span) {
	if !sp.Valid() || sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// WriteString emits synthesized text. When origin is a valid span the start
// of the text maps back to it, which keeps rewritten call sites addressable
// in the source map.
func (w *Writer) WriteString(s string, origin source.Span) {
	if s == "" {
		return
	}
	if w.maps != nil && origin.Valid() && origin.File == w.sf.ID {
		w.mapOffset(origin.Start)
	}
	w.buf = append(w.buf, s...)
	w.advance([]byte(s))
}

// Newline emits a newline unless the output already ends with one.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
		w.line++
		w.col = 0
	}
}

func (w *Writer) mapOffset(off uint32) {
	lc := w.sf.LineColAt(off)
	w.maps.add(segment{
		genLine: w.line,
		genCol:  w.col,
		srcLine: lc.Line - 1,
		srcCol:  lc.Col - 1,
	})
}
