package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// render prints v as JSON or YAML, or calls text for the human-readable form.
func (a *app) render(v interface{}, text func(w io.Writer)) error {
	switch a.outputFormat {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	text(a.out)
	return nil
}

const barWidth = 40

// bar draws value as a run of '#' scaled against full.
func bar(value, full float64) string {
	if full <= 0 || value <= 0 {
		return ""
	}
	n := int(value / full * barWidth)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}
