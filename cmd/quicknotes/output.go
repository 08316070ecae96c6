package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/quicknotes/internal/script"
	"github.com/aretw0/quicknotes/pkg/core"
)

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

// render writes v in the requested format. Text output prints one note per
// line as "id. title: content".
func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}

	notes, ok := v.([]core.Note)
	if !ok {
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "%d. %s\n", n.ID, n.String()); err != nil {
			return err
		}
	}
	return nil
}

func isQuery(op script.Op) bool {
	return op == script.OpGet || op == script.OpSearch || op == script.OpList
}

// renderStep writes the outcome of a query step. Text output is a
// "step N (op):" header followed by the indented notes; json and yaml emit
// the result as its own document.
func renderStep(w io.Writer, format string, res script.Result) error {
	if format != "text" {
		return render(w, format, res)
	}

	if _, err := fmt.Fprintf(w, "step %d (%s):\n", res.Step, res.Op); err != nil {
		return err
	}
	notes := res.Notes
	if res.Note != nil {
		notes = []core.Note{*res.Note}
	}
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "  (no notes)")
		return err
	}
	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", n.ID, n.String()); err != nil {
			return err
		}
	}
	return nil
}
