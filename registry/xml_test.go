package registry

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<registry>
    <enums namespace="GL" group="PrimitiveType">
        <enum value="0x0004" name="GL_TRIANGLES"/>
        <enum value="1" name="GL_ONE"></enum>
        <!-- comment -->
        <unused start="0x8000"/>
    </enums>
</registry>
`

func collect(t *testing.T, s Stream) []Event {
	t.Helper()

	var out []Event

	for {
		ev, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out
		}

		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}

		out = append(out, ev)
	}
}

func TestXMLStream(t *testing.T) {
	events := collect(t, NewXMLStream(strings.NewReader(sampleXML)))

	want := []struct {
		kind EventKind
		name string
		line int
	}{
		{EventOpen, "registry", 2},
		{EventOpen, "enums", 3},
		{EventEmpty, "enum", 4},
		{EventEmpty, "enum", 5},
		{EventEmpty, "unused", 7},
		{EventClose, "enums", 8},
		{EventClose, "registry", 9},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(want), events)
	}

	for i, w := range want {
		ev := events[i]
		if ev.Kind != w.kind || ev.Name != w.name {
			t.Errorf("event %d = %s %s, want %s %s", i, ev.Kind, ev.Name, w.kind, w.name)
		}

		if ev.Line != w.line {
			t.Errorf("event %d (%s) line = %d, want %d", i, ev.Name, ev.Line, w.line)
		}
	}

	triangles := events[2]
	if v, _ := triangles.Attr("name"); v != "GL_TRIANGLES" {
		t.Errorf("name attr = %q", v)
	}

	if len(triangles.Attrs) != 2 || triangles.Attrs[0].Key != "value" {
		t.Errorf("attributes not in document order: %v", triangles.Attrs)
	}
}

func TestXMLStream_AdjacentTags(t *testing.T) {
	events := collect(t, NewXMLStream(strings.NewReader(
		`<enums><enum name="GL_A" value="1"/><enum name="GL_B" value="2"/></enums>`)))

	kinds := make([]EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}

	want := []EventKind{EventOpen, EventEmpty, EventEmpty, EventClose}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d kind = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestXMLStream_Skip(t *testing.T) {
	s := NewXMLStream(strings.NewReader(
		`<registry><types><type>typedef <name>GLenum</name>;</type></types><enums/></registry>`))

	for _, name := range []string{"registry", "types"} {
		ev, err := s.Next()
		if err != nil || ev.Name != name {
			t.Fatalf("Next = %v, %v; want %s", ev, err, name)
		}
	}

	if err := s.Skip(); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}

	ev, err := s.Next()
	if err != nil || ev.Name != "enums" || ev.Kind != EventEmpty {
		t.Errorf("after Skip got %v, %v", ev, err)
	}
}

func TestXMLStream_Malformed(t *testing.T) {
	s := NewXMLStream(strings.NewReader(`<enums><enum name="GL_A"></enums>`))

	var err error
	for err == nil {
		_, err = s.Next()
	}

	if errors.Is(err, io.EOF) {
		t.Error("mismatched tags reached EOF without a syntax error")
	}
}

func TestSkip_EndOfInput(t *testing.T) {
	s := Events(Event{Kind: EventOpen, Name: "type"})

	if err := Skip(s); !errors.Is(err, ErrUnexpectedEndOfInput) {
		t.Errorf("Skip error = %v", err)
	}
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Kind: EventOpen, Name: "enums"}, "<enums>"},
		{Event{Kind: EventClose, Name: "enums"}, "</enums>"},
		{
			Event{Kind: EventEmpty, Name: "enum", Attrs: []Attr{{"name", "GL_ONE"}}},
			`<enum name="GL_ONE"/>`,
		},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
