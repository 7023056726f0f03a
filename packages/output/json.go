package output

import (
	"encoding/json"

	"github.com/V1Zak/postman-helper-sub000/packages/runner"
)

type JSONReporter struct{}

func NewJSON() *JSONReporter {
	return &JSONReporter{}
}

// Format serializes the summary verbatim, pretty-printed. Every field is
// present; nothing is renamed or omitted.
func (r *JSONReporter) Format(summary *runner.Summary) string {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "{}\n"
	}
	return string(out) + "\n"
}
