package format

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/fhw-wedel/timetable-solver/pkg/export"
)

// RenderTabular renders a Dataset as an aligned plain-text table, the
// default output spec.md's CLI surface always produces.
func RenderTabular(title string, data export.Dataset) []byte {
	var buf bytes.Buffer
	if title != "" {
		fmt.Fprintf(&buf, "%s\n\n", title)
	}

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, joinTab(data.Headers))
	for _, row := range data.Rows {
		values := make([]string, len(data.Headers))
		for i, h := range data.Headers {
			values[i] = row[h]
		}
		fmt.Fprintln(w, joinTab(values))
	}
	w.Flush()

	return buf.Bytes()
}

func joinTab(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += "\t"
		}
		out += v
	}
	return out
}
