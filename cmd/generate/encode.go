package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"isorail.dev/internal/generation"
	"isorail.dev/internal/models"
)

// encode renders a world in the requested format
func encode(w *models.WorldResponse, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// previewLines draws the terrain codes with route cells marked '#'.
// Cities stay visible as 'c'.
func previewLines(w *generation.World) []string {
	lines := w.Grid.Codes()
	cells := make([][]byte, len(lines))
	for y, l := range lines {
		cells[y] = []byte(l)
	}
	for _, p := range w.Route.Points {
		if w.Grid.InBounds(p) && cells[p.Y][p.X] != 'c' {
			cells[p.Y][p.X] = '#'
		}
	}
	for y := range cells {
		lines[y] = string(cells[y])
	}
	return lines
}
