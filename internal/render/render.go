// Package render turns a report.Full into terminal text, YAML, or JSON.
// All presentation decisions live here; report values carry plain text only.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/checkup/internal/report"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
//
// Postcondition: Returns an error for names other than text, yaml, and json.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", name)
	}
}

// Options configures Render.
type Options struct {
	Format Format
	// Color enables ANSI colour for FormatText.
	Color bool
}

// Render writes full to w in the requested format.
//
// Precondition: w must be non-nil.
// Postcondition: Returns the first write or encode error.
func Render(w io.Writer, full report.Full, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return Text(w, full, opts.Color)
	case FormatYAML:
		return YAML(w, full)
	case FormatJSON:
		return JSON(w, full)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// YAML writes full as a YAML document.
func YAML(w io.Writer, full report.Full) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(full); err != nil {
		return fmt.Errorf("encoding report as yaml: %w", err)
	}
	return enc.Close()
}

// JSON writes full as indented JSON.
func JSON(w io.Writer, full report.Full) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(full); err != nil {
		return fmt.Errorf("encoding report as json: %w", err)
	}
	return nil
}

// Text writes full as a terminal report.
func Text(w io.Writer, full report.Full, color bool) error {
	tw := &textWriter{w: w, p: palette{enabled: color}}
	for i, sec := range full.Sections {
		if i > 0 {
			tw.line("")
		}
		tw.section(sec)
	}
	return tw.err
}

// textWriter remembers the first write error and skips later writes.
type textWriter struct {
	w   io.Writer
	p   palette
	err error
}

func (t *textWriter) line(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *textWriter) section(sec report.Section) {
	heading := sec.Heading
	if sat, total := sec.Counts(); total > 0 {
		heading = fmt.Sprintf("%s (%d/%d)", heading, sat, total)
	}
	t.line("%s", t.p.paint(Bold, "== "+heading+" =="))
	for _, f := range sec.Facts {
		t.line("  %s", f.Text)
	}
	for _, r := range sec.Results {
		t.line("  %s", t.result(r))
	}
	for _, g := range sec.Remaining {
		t.line("  %s", t.p.paint(Dim, fmt.Sprintf("%s (%d):", capitalize(g.Label), len(g.Items))))
		for _, item := range g.Items {
			t.line("    - %s", item)
		}
	}
}

func (t *textWriter) result(r report.Result) string {
	var b strings.Builder
	switch r.Rule.Kind {
	case report.KindPoints:
		b.WriteString(t.p.paint(Yellow, fmt.Sprintf("[%d/%d]", r.Progress, r.Rule.Threshold)))
	case report.KindMilestone:
		if r.Satisfied {
			b.WriteString(t.p.paint(Cyan, "[*]"))
		} else {
			b.WriteString(t.p.paint(Dim, "[ ]"))
		}
	default:
		if r.Satisfied {
			b.WriteString(t.p.paint(Green, "[x]"))
		} else {
			b.WriteString(t.p.paint(Red, "[ ]"))
		}
	}
	b.WriteByte(' ')
	switch {
	case r.Rule.Name != "" && r.Rule.Description != "":
		b.WriteString(t.p.paint(Bold, r.Rule.Name))
		b.WriteString(": ")
		b.WriteString(r.Rule.Description)
	case r.Rule.Name != "":
		b.WriteString(t.p.paint(Bold, r.Rule.Name))
	default:
		b.WriteString(r.Rule.Description)
	}
	switch {
	case r.Detail != "":
		fmt.Fprintf(&b, " (%s)", r.Detail)
	case !r.Satisfied && r.Rule.Kind != report.KindPoints:
		fmt.Fprintf(&b, " (%d more)", r.Deficit)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
