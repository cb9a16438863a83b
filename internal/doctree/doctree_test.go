package doctree

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_PreservesInsertionOrder(t *testing.T) {
	var r Record
	r.Set("zeta", "1")
	r.Set("alpha", "2")
	r.Set("mid", "3")

	if !reflect.DeepEqual(r.Keys(), []string{"zeta", "alpha", "mid"}) {
		t.Errorf("unexpected key order: %q", r.Keys())
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"zeta":"1","alpha":"2","mid":"3"}` {
		t.Errorf("unexpected JSON: %s", b)
	}
}

func TestRecord_SetOverwritesInPlace(t *testing.T) {
	var r Record
	r.Set("a", "1")
	r.Set("b", "2")
	r.Set("a", "3")

	if r.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", r.Len())
	}
	if v, _ := r.Get("a"); v != "3" {
		t.Errorf("expected last write to win, got %q", v)
	}
	if r.Fields()[0].Key != "a" {
		t.Errorf("expected overwritten key to keep its position, got %+v", r.Fields())
	}
}

func TestRecord_EscapesStrings(t *testing.T) {
	var r Record
	r.Set(`quote"key`, "line\nbreak")
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]string
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("output is not valid JSON: %s: %v", b, err)
	}
	if back[`quote"key`] != "line\nbreak" {
		t.Errorf("unexpected decoded value: %+v", back)
	}
}

func TestNewDocument_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	doc := NewDocument()
	doc.Sections = append(doc.Sections, NewSection("S"))
	doc.Sections[0].Subsections = append(doc.Sections[0].Subsections, NewSubsection("Sub"))

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"","sections":[{"title":"S","content":[],"subsections":[{"title":"Sub","content":[],"tables":[]}],"tables":[]}]}`
	if string(b) != want {
		t.Errorf("unexpected JSON\n got: %s\nwant: %s", b, want)
	}
}
