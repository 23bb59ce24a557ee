package lexical

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantKind Classification
		wantPre  string
		wantWord string
	}{
		{
			name:     "qualified after alias",
			text:     "import Foo.Bar as F\n\nf = F.ba",
			offset:   len("import Foo.Bar as F\n\nf = F.ba"),
			wantKind: ModuleQualified,
			wantPre:  "F",
			wantWord: "ba",
		},
		{
			name:     "bare lowercase",
			text:     "x = val",
			offset:   7,
			wantKind: BareFunction,
			wantPre:  "",
			wantWord: "val",
		},
		{
			name:     "uppercase word without prefix",
			text:     "x = Htm",
			offset:   7,
			wantKind: ModuleQualified,
			wantPre:  "",
			wantWord: "Htm",
		},
		{
			name:     "trailing dot leaves empty current word",
			text:     "x = Html.",
			offset:   9,
			wantKind: ModuleQualified,
			wantPre:  "Html",
			wantWord: "",
		},
		{
			name:     "multi segment prefix",
			text:     "y = Json.Decode.ma",
			offset:   18,
			wantKind: ModuleQualified,
			wantPre:  "Json.Decode",
			wantWord: "ma",
		},
		{
			name:     "nothing before cursor",
			text:     "x = ",
			offset:   4,
			wantKind: BareFunction,
			wantPre:  "",
			wantWord: "",
		},
		{
			name:     "offset zero",
			text:     "anything",
			offset:   0,
			wantKind: BareFunction,
			wantPre:  "",
			wantWord: "",
		},
		{
			name:     "underscore and digits",
			text:     "x = my_val2",
			offset:   11,
			wantKind: BareFunction,
			wantPre:  "",
			wantWord: "my_val2",
		},
		{
			name:     "offset past end is clamped",
			text:     "x = val",
			offset:   400,
			wantKind: BareFunction,
			wantPre:  "",
			wantWord: "val",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.offset)
			if got.Classification != tt.wantKind {
				t.Errorf("Classification = %q, want %q", got.Classification, tt.wantKind)
			}
			if got.Prefix != tt.wantPre {
				t.Errorf("Prefix = %q, want %q", got.Prefix, tt.wantPre)
			}
			if got.CurrentWord != tt.wantWord {
				t.Errorf("CurrentWord = %q, want %q", got.CurrentWord, tt.wantWord)
			}
		})
	}
}

func TestTokenAt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   string
	}{
		{"identifier", "x = val", 7, "val"},
		{"qualified", "f = F.ba", 8, "F.ba"},
		{"operator run", "y = a |>", 8, "|>"},
		{"after space", "foo ", 4, ""},
		{"empty text", "", 0, ""},
		{"pipe into identifier", "a|>b", 4, "a|>b"},
		{"negative offset", "abc", -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenAt(tt.text, tt.offset); got != tt.want {
				t.Errorf("TokenAt(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
			}
		})
	}
}

func TestWordAt(t *testing.T) {
	text := "f = Html.text model"

	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"start of word", len("f = "), "Html.text"},
		{"middle of word", len("f = Html.te"), "Html.text"},
		{"end of word", len("f = Html.text"), "Html.text"},
		{"on following space", len("f = Html.text "), "model"},
		{"bare identifier", len("f = Html.text mo"), "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordAt(text, tt.offset); got != tt.want {
				t.Errorf("WordAt(%d) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}
