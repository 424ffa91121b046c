package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Script returns the browser statement that draws cfg on the canvas surfaceID
// with Chart.js.
func Script(surfaceID string, cfg Config) (string, error) {
	id, err := json.Marshal(surfaceID)
	if err != nil {
		return "", err
	}
	body, err := cfg.JSON()
	if err != nil {
		return "", fmt.Errorf("encode %s chart config: %w", cfg.Type, err)
	}
	return fmt.Sprintf("new Chart(document.getElementById(%s).getContext('2d'), %s);", id, body), nil
}

// Scripts is a Library that collects Chart.js statements for the browser.
type Scripts struct {
	statements []string
}

func (s *Scripts) Draw(surfaceID string, cfg Config) error {
	stmt, err := Script(surfaceID, cfg)
	if err != nil {
		return err
	}
	s.statements = append(s.statements, stmt)
	return nil
}

// Len returns the number of collected statements.
func (s *Scripts) Len() int { return len(s.statements) }

// Source wraps the collected statements in a DOMContentLoaded listener.
// It returns "" when nothing was drawn.
func (s *Scripts) Source() string {
	if len(s.statements) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("document.addEventListener(\"DOMContentLoaded\", () => {\n")
	for _, stmt := range s.statements {
		b.WriteString("    ")
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("});\n")
	return b.String()
}
