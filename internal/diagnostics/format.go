package diagnostics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// codePrefix returns the text printed before a diagnostic's message in human-readable
// form: its stable code for errors/named lints, or its level name when there is none.
func codePrefix(d Diagnostic) string {
	if d.Code != "" {
		return string(d.Code)
	}
	return d.Level().String()
}

// WriteHuman writes diags in a rustc-style human-readable form:
//
//	CODE-prefix: message
//	 --> file:row:col
//	 = note: ...
func WriteHuman(w io.Writer, diags []Diagnostic) error {
	bw := bufio.NewWriter(w)
	for _, d := range diags {
		if d.Level() == LevelAllowed {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\n", codePrefix(d), d.Message); err != nil {
			return err
		}
		if d.Span.IsValid() {
			if _, err := fmt.Fprintf(bw, " --> %s:%d:%d\n", d.Span.File, d.Span.Start.Line, d.Span.Start.Column); err != nil {
				return err
			}
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(bw, " = note: %s\n", n.Message); err != nil {
				return err
			}
			if n.Span != nil && n.Span.IsValid() {
				if _, err := fmt.Fprintf(bw, "    --> %s:%d:%d\n", n.Span.File, n.Span.Start.Line, n.Span.Start.Column); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

type jsonSpan struct {
	File    string `json:"file"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	EndRow  int    `json:"end_row"`
	EndCol  int    `json:"end_col"`
}

type jsonNote struct {
	Message string    `json:"message"`
	Span    *jsonSpan `json:"span,omitempty"`
}

type jsonDiagnostic struct {
	Code    string     `json:"code"`
	Level   string     `json:"level"`
	Message string     `json:"message"`
	Span    *jsonSpan  `json:"span,omitempty"`
	Notes   []jsonNote `json:"notes"`
}

// WriteJSON writes diags as one JSON object per line, for machine consumption. Allowed
// lints are still excluded, matching WriteHuman's behavior.
func WriteJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	for _, d := range diags {
		if d.Level() == LevelAllowed {
			continue
		}
		jd := jsonDiagnostic{
			Code:    string(d.Code),
			Level:   d.Level().String(),
			Message: d.Message,
			Notes:   make([]jsonNote, 0, len(d.Notes)),
		}
		if d.Span.IsValid() {
			jd.Span = &jsonSpan{File: d.Span.File, Row: d.Span.Start.Line, Col: d.Span.Start.Column, EndRow: d.Span.End.Line, EndCol: d.Span.End.Column}
		}
		for _, n := range d.Notes {
			jn := jsonNote{Message: n.Message}
			if n.Span != nil && n.Span.IsValid() {
				jn.Span = &jsonSpan{File: n.Span.File, Row: n.Span.Start.Line, Col: n.Span.Start.Column, EndRow: n.Span.End.Line, EndCol: n.Span.End.Column}
			}
			jd.Notes = append(jd.Notes, jn)
		}
		if err := enc.Encode(jd); err != nil {
			return err
		}
	}
	return nil
}
