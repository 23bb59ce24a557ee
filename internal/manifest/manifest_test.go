package manifest

import (
	"encoding/json"
	"reflect"
	"testing"
)

const htmlDocsJSON = `[
  {
    "name": "Html",
    "comment": " HTML nodes. ",
    "unions": [
      {
        "name": "Visibility",
        "comment": " Show or hide. ",
        "args": [],
        "cases": [["Shown", []], ["Hidden", ["String"]]]
      }
    ],
    "aliases": [
      {
        "name": "Attribute",
        "comment": " Decorate nodes. ",
        "args": ["msg"],
        "type": "VirtualDom.Attribute msg"
      }
    ],
    "values": [
      {
        "name": "text",
        "comment": " Turn a string into text. ",
        "type": "String -> Html.Html msg"
      }
    ],
    "binops": [
      {
        "name": "+",
        "comment": " Add. ",
        "type": "number -> number -> number"
      }
    ]
  }
]`

func TestModuleDocs_Decode(t *testing.T) {
	var docs []ModuleDocs
	if err := json.Unmarshal([]byte(htmlDocsJSON), &docs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}

	m := docs[0]
	if m.Name != "Html" {
		t.Errorf("Name = %q, want Html", m.Name)
	}
	if len(m.Unions) != 1 {
		t.Fatalf("Unions = %+v, want 1", m.Unions)
	}
	wantCases := []UnionCase{
		{Name: "Shown", Args: []string{}},
		{Name: "Hidden", Args: []string{"String"}},
	}
	if !reflect.DeepEqual(m.Unions[0].Cases, wantCases) {
		t.Errorf("Cases = %+v, want %+v", m.Unions[0].Cases, wantCases)
	}
	if len(m.Values) != 1 || m.Values[0].Type != "String -> Html.Html msg" {
		t.Errorf("Values = %+v", m.Values)
	}
	if len(m.Aliases) != 1 || m.Aliases[0].Type != "VirtualDom.Attribute msg" {
		t.Errorf("Aliases = %+v", m.Aliases)
	}
	if len(m.Binops) != 1 || m.Binops[0].Name != "+" {
		t.Errorf("Binops = %+v", m.Binops)
	}
}

func TestUnionCase_RoundTrip(t *testing.T) {
	in := UnionCase{Name: "Got", Args: []string{"Result String Int"}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out UnionCase
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDependency_Exposes(t *testing.T) {
	d := &Dependency{ExposedModules: []string{"Html", "Html.Attributes"}}

	if !d.Exposes("Html") {
		t.Error("Exposes(Html) = false, want true")
	}
	if d.Exposes("Svg") {
		t.Error("Exposes(Svg) = true, want false")
	}
	if d.ModuleFor("Svg") != nil {
		t.Error("ModuleFor(Svg) != nil")
	}
}
