package xmlstream

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrMalformed marks documents the tokenizer could not read.
var ErrMalformed = errors.New("malformed XML")

// Handler receives the structural events of a document in order.
type Handler interface {
	OpenTag(e Element) error
	CloseTag(name string) error
}

// PositionError locates a failure in the streamed document.
type PositionError struct {
	Line   int
	Column int
	Err    error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// Stream tokenizes r and calls h for every start and end element. Self-closing
// elements produce an open immediately followed by a close. Encodings other
// than UTF-8 are converted according to the XML declaration.
//
// The first handler error stops the stream and is returned, positioned, as a
// *PositionError. Tokenizer failures additionally wrap ErrMalformed.
func Stream(ctx context.Context, r io.Reader, h Handler) error {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return positioned(d, fmt.Errorf("%w: %v", ErrMalformed, err))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				e.Attrs[a.Name.Local] = a.Value
			}
			if err := h.OpenTag(e); err != nil {
				return positioned(d, err)
			}
		case xml.EndElement:
			if err := h.CloseTag(t.Name.Local); err != nil {
				return positioned(d, err)
			}
		}
	}
}

func positioned(d *xml.Decoder, err error) error {
	line, col := d.InputPos()
	return &PositionError{Line: line, Column: col, Err: err}
}
