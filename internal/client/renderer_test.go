package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"table", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderer_TextProfileWithoutSavedRecipes(t *testing.T) {
	var buf bytes.Buffer
	view := &View{Page: PageProfile, Session: &Session{UserID: "u-1", UserName: "A", UserEmail: "a@x.com"}}

	if err := NewRenderer(FormatText, &buf).Render(view); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Name:  A", "Email: a@x.com", MsgNoSavedRecipes} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_TextResults(t *testing.T) {
	var buf bytes.Buffer
	view := &View{
		Page: PageHome,
		Recipes: []Recipe{
			{ID: 1, Title: "Mac & Cheese", Image: "https://img.example/1.jpg"},
		},
		Restaurants: []Restaurant{
			{DisplayName: "Joe's Diner", Address: "Joe's Diner"},
		},
	}

	if err := NewRenderer(FormatText, &buf).Render(view); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"[1] Mac & Cheese", "https://img.example/1.jpg", "Joe's Diner"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	view := &View{Page: PageProfile, SavedRecipes: []SavedRecipe{{ID: "s-1", RecipeID: "42", Title: "Fish & Chips"}}}

	if err := NewRenderer(FormatJSON, &buf).Render(view); err != nil {
		t.Fatal(err)
	}

	var got View
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if got.Page != PageProfile || len(got.SavedRecipes) != 1 || got.SavedRecipes[0].Title != "Fish & Chips" {
		t.Errorf("unexpected decoded view %+v", got)
	}
}

func TestRenderer_YAML(t *testing.T) {
	var buf bytes.Buffer
	view := &View{Page: PageLogin, Notice: MsgLoggedOut}

	if err := NewRenderer(FormatYAML, &buf).Render(view); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if got["page"] != "login" || got["notice"] != MsgLoggedOut {
		t.Errorf("unexpected YAML %v", got)
	}
}

func TestRenderer_NilView(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(FormatText, &buf).Render(nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
