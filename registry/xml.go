package registry

import (
	"encoding/xml"
	"io"
)

// XMLStream adapts an [encoding/xml] token stream to registry [Event]s.
//
// Start elements that are immediately followed by their end element, such as
// <enum .../> or <enum ...></enum>, become [EventEmpty]. Character data,
// comments, processing instructions and directives are dropped. Attribute
// names are reported without their namespace.
type XMLStream struct {
	dec     *xml.Decoder
	pending xml.Token
	line    int // position preceding pending
	col     int
}

// NewXMLStream returns a stream reading markup from r.
func NewXMLStream(r io.Reader) *XMLStream {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	return &XMLStream{dec: dec}
}

// Next returns the next tag event, or [io.EOF] at the end of input.
func (s *XMLStream) Next() (Event, error) {
	for {
		tok, line, col, err := s.token()
		if err != nil {
			return Event{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ev := Event{
				Kind:   EventOpen,
				Name:   t.Name.Local,
				Attrs:  make([]Attr, 0, len(t.Attr)),
				Line:   line,
				Column: col,
			}

			for _, a := range t.Attr {
				ev.Attrs = append(ev.Attrs, Attr{Key: a.Name.Local, Value: a.Value})
			}

			s.line, s.col = s.dec.InputPos()

			next, err := s.dec.Token()
			if err != nil && err != io.EOF {
				return Event{}, err
			}

			if end, ok := next.(xml.EndElement); ok && end.Name == t.Name {
				ev.Kind = EventEmpty
			} else if next != nil {
				s.pending = xml.CopyToken(next)
			}

			return ev, nil

		case xml.EndElement:
			return Event{
				Kind:   EventClose,
				Name:   t.Name.Local,
				Line:   line,
				Column: col,
			}, nil
		}
	}
}

// Skip discards the remainder of the element opened by the last
// [EventOpen] returned by Next.
func (s *XMLStream) Skip() error { return Skip(s) }

// token returns the pending lookahead token or reads a new one, along with
// the decoder position preceding it.
func (s *XMLStream) token() (xml.Token, int, int, error) {
	if s.pending != nil {
		tok := s.pending
		s.pending = nil

		return tok, s.line, s.col, nil
	}

	line, col := s.dec.InputPos()

	tok, err := s.dec.Token()
	if err != nil {
		return nil, 0, 0, err
	}

	return tok, line, col, nil
}
