package vision

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const extractPrompt = `Analyze this photo of an American-style crossword grid.

Return its structure as JSON in exactly this shape:
{
  "rows": <number of rows>,
  "cols": <number of columns>,
  "cells": [
    [{"black": true}, {"black": false, "circled": true}, ...],
    ...
  ]
}

Rules:
- A filled (dark) square is "black": true.
- A fillable square is "black": false; set "circled": true when it contains a circle.
- Ignore any letters or numbers printed in the squares.
- Answer ONLY with the JSON, no commentary and no markdown.`

// CellGuess is one detected square.
type CellGuess struct {
	Black   bool `json:"black"`
	Circled bool `json:"circled,omitempty"`
}

// Extraction is the pattern detected in a photo.
type Extraction struct {
	Rows  int           `json:"rows"`
	Cols  int           `json:"cols"`
	Cells [][]CellGuess `json:"cells"`
}

// ParseExtraction decodes and validates a model response.
func ParseExtraction(text string) (*Extraction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	// Models sometimes wrap the JSON in a markdown fence despite the prompt.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var e Extraction
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return nil, fmt.Errorf("parse grid JSON: %w", err)
	}
	if e.Rows == 0 || e.Cols == 0 || len(e.Cells) == 0 {
		return nil, fmt.Errorf("invalid grid: %dx%d with %d cell rows", e.Rows, e.Cols, len(e.Cells))
	}
	return &e, nil
}

// Serialize renders the extraction in the grid text form for a size×size
// grid. Extra rows and columns are cut; missing ones are left out so they
// decode as white.
func (e *Extraction) Serialize(size int) string {
	rows := make([]string, 0, size)
	for r := 0; r < size && r < len(e.Cells); r++ {
		var b strings.Builder
		for c := 0; c < size && c < len(e.Cells[r]); c++ {
			switch cell := e.Cells[r][c]; {
			case cell.Black:
				b.WriteByte(' ')
			case cell.Circled:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// MIMEType returns the image MIME type for a file name, or an error for
// unsupported formats.
func MIMEType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("unsupported image format %q (accepted: JPEG or PNG)", filepath.Ext(path))
	}
}
