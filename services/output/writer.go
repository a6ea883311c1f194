// Package output streams a pair dataset as a JSON document of the form
// {"pairs":[{"x0":..,"y0":..,"x1":..,"y1":..},...]}.
package output

import (
	"bytes"
	"io"

	"github.com/DIMO-Network/haversine-gen/services/generator"
	jsoniter "github.com/json-iterator/go"
)

const flushThreshold = 64 * 1024

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer encodes pairs one at a time. Errors are sticky: after the first failure every call
// returns the same error.
type Writer struct {
	stream  *jsoniter.Stream
	written int
	closed  bool
}

// NewWriter starts the document on w. Nothing reaches w until the buffer fills or Close is
// called.
func NewWriter(w io.Writer) *Writer {
	s := jsoniter.NewStream(json, w, flushThreshold)
	s.WriteObjectStart()
	s.WriteObjectField("pairs")
	s.WriteArrayStart()
	return &Writer{stream: s}
}

// WritePair appends one entry.
func (w *Writer) WritePair(p generator.Pair) error {
	s := w.stream
	if s.Error != nil {
		return s.Error
	}
	if w.written > 0 {
		s.WriteMore()
	}
	s.WriteObjectStart()
	s.WriteObjectField("x0")
	w.writeFloat(p.X0)
	s.WriteMore()
	s.WriteObjectField("y0")
	w.writeFloat(p.Y0)
	s.WriteMore()
	s.WriteObjectField("x1")
	w.writeFloat(p.X1)
	s.WriteMore()
	s.WriteObjectField("y1")
	w.writeFloat(p.Y1)
	s.WriteObjectEnd()
	w.written++

	if s.Buffered() >= flushThreshold {
		return s.Flush()
	}
	return s.Error
}

// writeFloat appends in place; Stream.Write would push the whole buffer to the output.
func (w *Writer) writeFloat(v float64) {
	w.stream.SetBuffer(appendFloat(w.stream.Buffer(), v))
}

// Written returns the number of pairs encoded so far.
func (w *Writer) Written() int {
	return w.written
}

// Close ends the document and flushes it. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return w.stream.Error
	}
	w.closed = true
	s := w.stream
	if s.Error != nil {
		return s.Error
	}
	s.WriteArrayEnd()
	s.WriteObjectEnd()
	return s.Flush()
}

// Marshal encodes a whole dataset at once.
func Marshal(ds generator.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, p := range ds.Pairs {
		if err := w.WritePair(p); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
