package complete

import (
	"context"
	"strings"
	"testing"
)

func TestHover_LocalDeclaration(t *testing.T) {
	w, e := newFixture(t)
	text := strings.Join([]string{
		"module Main exposing (..)",
		"",
		"{-| Render the page. -}",
		"view : Model -> Html Msg",
		"view model =",
		"    model",
		"",
		"body = view",
	}, "\n")
	path := w.WriteFile("src/Main.elm", text)

	offset := strings.LastIndex(text, "view") + 1
	got := e.Hover(context.Background(), path, offset)

	if !strings.Contains(got, "```elm\nview : Model -> Html Msg\n```") {
		t.Errorf("Hover = %q, want fenced signature", got)
	}
	if !strings.Contains(got, "Render the page.") {
		t.Errorf("Hover = %q, want doc comment", got)
	}
}

func TestHover_QualifiedDependency(t *testing.T) {
	w, e := newFixture(t)
	text := "module Main exposing (..)\n\nimport Html\n\nx = Html.text \"hi\"\n"
	path := w.WriteFile("src/Main.elm", text)

	offset := strings.Index(text, "Html.text") + len("Html.te")
	got := e.Hover(context.Background(), path, offset)

	if !strings.Contains(got, "text : String -> Html.Html msg") {
		t.Errorf("Hover = %q, want docs signature", got)
	}
	if !strings.Contains(got, "Turn a string into text.") {
		t.Errorf("Hover = %q, want docs comment", got)
	}
}

func TestHover_AliasedDependency(t *testing.T) {
	w, e := newFixture(t)
	text := "module Main exposing (..)\n\nimport Html.Events as Ev\n\nx = Ev.onClick\n"
	path := w.WriteFile("src/Main.elm", text)

	offset := strings.Index(text, "Ev.onClick") + len("Ev.onCli")
	got := e.Hover(context.Background(), path, offset)

	if !strings.Contains(got, "onClick : msg -> Html.Attribute msg") {
		t.Errorf("Hover = %q, want docs signature through the alias", got)
	}
}

func TestHover_QualifiedLocalModuleFallsBackToParse(t *testing.T) {
	w, e := newFixture(t)
	w.WriteFile("src/Page/Util.elm", strings.Join([]string{
		"module Page.Util exposing (helper)",
		"",
		"{-| A small helper. -}",
		"helper : Int -> Int",
		"helper n = n",
	}, "\n"))
	text := "module Main exposing (..)\n\nimport Page.Util as U\n\nx = U.helper 1\n"
	path := w.WriteFile("src/Main.elm", text)

	offset := strings.Index(text, "U.helper") + len("U.help")
	got := e.Hover(context.Background(), path, offset)

	if !strings.Contains(got, "helper : Int -> Int") {
		t.Errorf("Hover = %q, want parsed signature", got)
	}
	if !strings.Contains(got, "A small helper.") {
		t.Errorf("Hover = %q, want parsed doc comment", got)
	}
}

func TestHover_Unknown(t *testing.T) {
	w, e := newFixture(t)
	text := "module Main exposing (..)\n\nx = mystery\n"
	path := w.WriteFile("src/Main.elm", text)

	tests := []struct {
		name   string
		offset int
	}{
		{"unknown identifier", strings.Index(text, "mystery") + 3},
		{"whitespace", strings.Index(text, "= ") + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Hover(context.Background(), path, tt.offset); got != "" {
				t.Errorf("Hover = %q, want empty", got)
			}
		})
	}
}
