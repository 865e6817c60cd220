package registry

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// EventKind discriminates tag events.
type EventKind uint8

const (
	EventOpen  EventKind = iota // open
	EventEmpty                  // empty
	EventClose                  // close
)

// Attr is one attribute of a tag, in document order.
type Attr struct {
	Key   string
	Value string
}

// Event is one tag of the registry markup. Line and Column locate the tag in
// the input when known, and are zero otherwise.
type Event struct {
	Kind   EventKind
	Name   string
	Attrs  []Attr
	Line   int
	Column int
}

// Attr returns the value of the last attribute named key.
func (e Event) Attr(key string) (string, bool) {
	for i := len(e.Attrs) - 1; i >= 0; i-- {
		if e.Attrs[i].Key == key {
			return e.Attrs[i].Value, true
		}
	}

	return "", false
}

// String renders the event as markup, e.g. `<enum name="GL_ONE"/>`.
func (e Event) String() string {
	var b strings.Builder

	b.WriteByte('<')

	if e.Kind == EventClose {
		b.WriteByte('/')
	}

	b.WriteString(e.Name)

	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(a.Value))
	}

	if e.Kind == EventEmpty {
		b.WriteByte('/')
	}

	b.WriteByte('>')

	return b.String()
}

// Stream yields tag events. Next returns [io.EOF] after the last event.
type Stream interface {
	Next() (Event, error)
}

// Events returns a Stream over a fixed sequence of events.
func Events(events ...Event) Stream {
	return &sliceStream{events: events}
}

type sliceStream struct {
	events []Event
}

func (s *sliceStream) Next() (Event, error) {
	if len(s.events) == 0 {
		return Event{}, io.EOF
	}

	ev := s.events[0]
	s.events = s.events[1:]

	return ev, nil
}

// Skip consumes events up to and including the close tag matching an open
// tag that was just returned by s.
func Skip(s Stream) error {
	for depth := 0; ; {
		ev, err := s.Next()
		if errors.Is(err, io.EOF) {
			return ErrUnexpectedEndOfInput
		}

		if err != nil {
			return ErrReadInput.Wrap(err)
		}

		switch ev.Kind {
		case EventOpen:
			depth++

		case EventClose:
			if depth == 0 {
				return nil
			}

			depth--

		case EventEmpty:
		}
	}
}
