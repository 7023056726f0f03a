package output

import (
	"fmt"
	"strings"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/fatih/color"

	"github.com/V1Zak/postman-helper-sub000/packages/runner"
)

type ConsoleReporter struct {
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleReporter)

func NewConsole(opts ...ConsoleOption) *ConsoleReporter {
	r := &ConsoleReporter{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithVerbose(v bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.noColor = nc
	}
}

// paint builds a sprint func for the attribute, plain when noColor is set.
// The package-global color.NoColor is left alone so one plain reporter
// never strips color from the others in the same process.
func (r *ConsoleReporter) paint(attr color.Attribute) func(...any) string {
	if r.noColor {
		return fmt.Sprint
	}
	return color.New(attr).SprintFunc()
}

func (r *ConsoleReporter) Format(summary *runner.Summary) string {
	green := r.paint(color.FgGreen)
	red := r.paint(color.FgRed)
	yellow := r.paint(color.FgYellow)
	cyan := r.paint(color.FgCyan)
	bold := r.paint(color.Bold)

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", bold(summary.Collection))

	for i := range summary.Requests {
		req := &summary.Requests[i]

		symbol := green("✓")
		if !req.Passed() {
			symbol = red("✗")
		}

		status := "ERROR"
		if req.Status != nil {
			status = fmt.Sprintf("%d", *req.Status)
		}

		fmt.Fprintf(&b, "  %s %s %s %s %s\n",
			symbol, req.Method, req.Name,
			cyan(fmt.Sprintf("[%s]", status)),
			cyan(fmt.Sprintf("(%dms)", req.ResponseTime)))

		if req.Errored() {
			fmt.Fprintf(&b, "      %s\n", red(*req.Error))
			continue
		}

		for _, a := range req.TestResults.Results {
			mark := green("✓")
			if !a.Passed {
				mark = red("✗")
			}
			fmt.Fprintf(&b, "    %s %s\n", mark, a.Name)
			if a.Error != "" {
				fmt.Fprintf(&b, "      %s\n", red(a.Error))
			}
		}

		if r.verbose && req.Status != nil {
			fmt.Fprintf(&b, "    Status: %d %s\n", *req.Status, req.StatusText)
		}
	}

	fmt.Fprintf(&b, "\n  %d requests\n", summary.Total)
	fmt.Fprintf(&b, "  %s\n", green(fmt.Sprintf("%d passing", summary.Passed)))
	if failing := summary.Failures + summary.Errors; failing > 0 {
		fmt.Fprintf(&b, "  %s\n", red(fmt.Sprintf("%d failing", failing)))
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(&b, "  %s\n", yellow(fmt.Sprintf("%d skipped", summary.Skipped)))
	}

	if r.verbose {
		writeLatency(&b, summary, cyan)
	}

	fmt.Fprintf(&b, "\n  Time: %dms\n", summary.Duration)

	return b.String()
}

// writeLatency appends a response time distribution over the executed
// requests.
func writeLatency(b *strings.Builder, summary *runner.Summary, paint func(...any) string) {
	if len(summary.Requests) == 0 {
		return
	}

	hist := hdrhistogram.New(1, 10*60*1000, 3)
	for i := range summary.Requests {
		_ = hist.RecordValue(summary.Requests[i].ResponseTime)
	}

	fmt.Fprintf(b, "\n  %s\n", paint(fmt.Sprintf(
		"Latency: min %dms  mean %.0fms  p50 %dms  p95 %dms  p99 %dms  max %dms",
		hist.Min(), hist.Mean(),
		hist.ValueAtQuantile(50), hist.ValueAtQuantile(95), hist.ValueAtQuantile(99),
		hist.Max())))
}
