// Package stream incrementally decodes a response body made of free text
// interleaved with complete JSON objects, with no assumptions about how the
// bytes are chunked on the wire.
package stream

import (
	"encoding/json"
	"fmt"
)

// ErrMalformedTail is returned by Close when the stream ends inside an
// object that never became parseable.
var ErrMalformedTail = fmt.Errorf("stream: malformed object at end of stream")

// Decoder splits a chunked byte stream into text spans and JSON objects.
//
// It runs a two-state machine: scanning free text, and buffering a candidate
// object from an opening brace. Braces are counted with string/escape
// awareness, and a full parse is only attempted once they balance; a failed
// parse on a balanced buffer means "need more input", never a fatal error.
// Text is emitted as soon as it cannot be an object prefix; each object is
// emitted exactly once, in stream order.
type Decoder struct {
	onText   func(text string)
	onObject func(obj json.RawMessage)

	parsing  bool // false: scanning text, true: buffering an object
	buf      []byte
	depth    int
	inString bool
	escaped  bool
}

// NewDecoder creates a decoder emitting through the given callbacks. Either
// callback may be nil, discarding that emission channel.
func NewDecoder(onText func(string), onObject func(json.RawMessage)) *Decoder {
	return &Decoder{onText: onText, onObject: onObject}
}

// Feed consumes the next chunk. Chunks may split text, object markers, or
// object bodies at any byte boundary.
func (d *Decoder) Feed(chunk []byte) {
	text := make([]byte, 0, len(chunk))

	flushText := func() {
		if len(text) > 0 {
			d.emitText(string(text))
			text = text[:0]
		}
	}

	for _, b := range chunk {
		if !d.parsing {
			if b == '{' {
				flushText()
				d.parsing = true
				d.buf = append(d.buf[:0], b)
				d.depth = 1
				d.inString = false
				d.escaped = false
				continue
			}
			text = append(text, b)
			continue
		}

		d.buf = append(d.buf, b)
		d.scan(b)
		if d.depth == 0 {
			d.tryEmitObject()
		}
	}

	flushText()

	// a balanced-but-unparseable buffer is retried as more bytes arrive
	if d.parsing && d.depth == 0 {
		d.tryEmitObject()
	}
}

// Close signals end-of-stream. A non-empty object buffer at this point is a
// malformed response.
func (d *Decoder) Close() error {
	if d.parsing && len(d.buf) > 0 {
		return fmt.Errorf("%w: %q", ErrMalformedTail, string(d.buf))
	}
	return nil
}

// scan updates brace depth for one byte, ignoring braces inside strings.
func (d *Decoder) scan(b byte) {
	if d.inString {
		switch {
		case d.escaped:
			d.escaped = false
		case b == '\\':
			d.escaped = true
		case b == '"':
			d.inString = false
		}
		return
	}

	switch b {
	case '"':
		d.inString = true
	case '{':
		d.depth++
	case '}':
		if d.depth > 0 {
			d.depth--
		}
	}
}

func (d *Decoder) tryEmitObject() {
	var raw json.RawMessage
	if err := json.Unmarshal(d.buf, &raw); err != nil {
		return // not yet complete; keep buffering
	}

	obj := make(json.RawMessage, len(raw))
	copy(obj, raw)
	if d.onObject != nil {
		d.onObject(obj)
	}

	d.parsing = false
	d.buf = d.buf[:0]
}

func (d *Decoder) emitText(text string) {
	if d.onText != nil {
		d.onText(text)
	}
}
