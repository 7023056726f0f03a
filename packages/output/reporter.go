package output

import (
	"strings"

	"github.com/V1Zak/postman-helper-sub000/packages/runner"
)

// Reporter renders a run summary to text. Implementations are pure: the
// same summary always yields the same output, and the summary is never
// mutated.
type Reporter interface {
	Format(summary *runner.Summary) string
}

// Get selects a reporter by name, case-insensitively. "junit" and "xml"
// both select the JUnit reporter; anything unrecognized falls back to the
// console reporter, which accepts the given options.
func Get(name string, consoleOpts ...ConsoleOption) Reporter {
	switch strings.ToLower(name) {
	case "junit", "xml":
		return NewJUnit()
	case "json":
		return NewJSON()
	default:
		return NewConsole(consoleOpts...)
	}
}
