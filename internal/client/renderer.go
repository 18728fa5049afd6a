package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format は出力形式。
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SupportedFormats は対応する出力形式の一覧を返す。
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat は文字列を出力形式に変換する。大文字小文字は区別しない。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: %s)", s, strings.Join(SupportedFormats(), ", "))
	}
}

// Renderer はViewを指定形式で書き出す。
type Renderer struct {
	format Format
	out    io.Writer
}

// NewRenderer はRendererを生成する。outがnilの場合は標準出力に書き出す。
func NewRenderer(format Format, out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if format == "" {
		format = FormatText
	}
	return &Renderer{format: format, out: out}
}

// Render はViewを書き出す。
func (r *Renderer) Render(v *View) error {
	if v == nil {
		return nil
	}
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return r.renderText(v)
	}
}

func (r *Renderer) renderText(v *View) error {
	var b strings.Builder

	if v.Notice != "" {
		b.WriteString(v.Notice + "\n")
	}

	if v.Page == PageProfile && v.Session != nil {
		fmt.Fprintf(&b, "Name:  %s\n", orNA(v.Session.UserName))
		fmt.Fprintf(&b, "Email: %s\n", orNA(v.Session.UserEmail))
		b.WriteString("Saved recipes:\n")
		if len(v.SavedRecipes) == 0 {
			b.WriteString("  " + MsgNoSavedRecipes + "\n")
		}
		for _, s := range v.SavedRecipes {
			fmt.Fprintf(&b, "  - %s (recipe %s)\n", s.Title, s.RecipeID)
		}
	} else if v.Session != nil {
		fmt.Fprintf(&b, "Logged in as %s <%s> (id %s)\n", v.Session.UserName, v.Session.UserEmail, v.Session.UserID)
	}

	for _, rec := range v.Recipes {
		fmt.Fprintf(&b, "[%d] %s\n", rec.ID, rec.Title)
		if rec.Image != "" {
			fmt.Fprintf(&b, "    %s\n", rec.Image)
		}
	}

	for _, rest := range v.Restaurants {
		fmt.Fprintf(&b, "%s\n    %s\n", rest.DisplayName, rest.Address)
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
