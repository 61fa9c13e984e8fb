package render

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output selects how the CLI prints a result.
type Output string

const (
	OutputText Output = "text"
	OutputHTML Output = "html"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case "", OutputText:
		return OutputText, nil
	case OutputHTML, OutputJSON, OutputYAML:
		return o, nil
	default:
		return "", fmt.Errorf("unknown output %q (want text, html, json or yaml)", s)
	}
}

// HTML wraps lines in an unordered list. Lines are escaped.
func HTML(lines []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, ln := range lines {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(ln))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, o Output, v any) error {
	switch o {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("encode: unsupported output %q", o)
	}
}
