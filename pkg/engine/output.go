package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Report summarizes a batch run.
type Report struct {
	RunID   string        `json:"run_id"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Failed  int           `json:"failed"`
	Results []Result      `json:"results"`
}

// FormatValue renders a result value for text output.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// WriteTextResult writes one result in human-readable format.
func WriteTextResult(w io.Writer, r Result) {
	if r.Error != "" {
		fmt.Fprintf(w, "%-20s %-36s error: %s\n", r.Operation, r.ID, r.Error)
		return
	}
	line := FormatValue(r.Value)
	if r.Approximate {
		line += fmt.Sprintf("  (approximate, %s)", r.Method)
	}
	fmt.Fprintf(w, "%-20s %-36s %s\n", r.Operation, r.ID, line)
}

// WriteText writes the whole report in human-readable format.
func WriteText(w io.Writer, r Report) {
	for _, res := range r.Results {
		WriteTextResult(w, res)
	}
	fmt.Fprintln(w, "----------------------------------")
	fmt.Fprintf(w, "Run:       %s\n", r.RunID)
	fmt.Fprintf(w, "Requests:  %d\n", len(r.Results))
	fmt.Fprintf(w, "Failed:    %d\n", r.Failed)
	fmt.Fprintf(w, "Elapsed:   %s\n", r.Elapsed.Round(time.Microsecond))
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write dispatches on format ("text" or "json").
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "text", "":
		WriteText(w, r)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
