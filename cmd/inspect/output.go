package main

import (
	"fmt"
	"io"
	"strings"

	"http-inspector/application/http/analysis"
	"http-inspector/application/http/note"
	sliceutil "http-inspector/lib/slice"

	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Note sections of the text report, in order.
var categories = []note.Category{
	note.General,
	note.Connection,
	note.Caching,
	note.Validation,
	note.ContentNegotiation,
	note.Range,
}

func writeJSON(w io.Writer, report *analysis.Report) error {
	data, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.Wrap(err, "writing report")
}

func writeText(w io.Writer, report *analysis.Report) error {
	var b strings.Builder

	resp := report.Response
	if resp.HasStatus() {
		fmt.Fprintf(&b, "%s %d %s\n", resp.Version, resp.StatusCode, resp.Reason)
		for _, f := range resp.Headers {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
		}
		fmt.Fprintf(&b, "\n%d payload bytes", resp.PayloadLength)
		if !resp.Complete {
			b.WriteString(" (incomplete)")
		}
		b.WriteString("\n")
	}
	if resp.Error != nil {
		fmt.Fprintf(&b, "error: %v\n", resp.Error)
	}

	if f := report.Freshness; f != nil {
		fmt.Fprintf(&b, "freshness: lifetime %s, current age %s, fresh %t\n", f.Lifetime, f.CurrentAge, f.Fresh)
	}

	for _, c := range categories {
		notes := sliceutil.Filter(report.Notes, func(n note.Note) bool { return n.Category == c })
		if len(notes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", c)
		for _, line := range sliceutil.Map(notes, note.Note.String) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	if len(report.Links) > 0 {
		b.WriteString("\nlinks:\n")
		for _, l := range report.Links {
			target := l.Target
			if target == "" {
				target = l.Raw
			}
			fmt.Fprintf(&b, "  %s %s\n", l.Tag, target)
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing report")
}
