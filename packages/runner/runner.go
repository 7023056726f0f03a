package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/V1Zak/postman-helper-sub000/packages/collection"
	"github.com/V1Zak/postman-helper-sub000/packages/env"
	"github.com/V1Zak/postman-helper-sub000/packages/http"
	"github.com/V1Zak/postman-helper-sub000/packages/sandbox"
)

// Options configures one runner instance.
type Options struct {
	// Timeout bounds each network call. Zero means the client default.
	Timeout time.Duration
	// Delay is the pause between successive executed requests.
	Delay time.Duration
	// Bail stops the run on the first failed or errored request; the
	// remainder of the flattened order counts as skipped.
	Bail bool
	// Rate caps request starts per second when positive.
	Rate float64
}

type Runner struct {
	client *http.Client
	opts   Options
}

func New(opts Options) *Runner {
	clientOpts := []http.ClientOption{}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, http.WithTimeout(opts.Timeout))
	}

	return &Runner{
		client: http.NewClient(clientOpts...),
		opts:   opts,
	}
}

// Result records one executed request. Status is nil and the test results
// are all zero whenever Error is set: the script never runs after a failed
// network call.
type Result struct {
	Name         string            `json:"name"`
	Method       string            `json:"method"`
	URL          string            `json:"url"`
	Status       *int              `json:"status"`
	StatusText   string            `json:"statusText"`
	ResponseTime int64             `json:"responseTime"`
	Headers      map[string]string `json:"headers"`
	Body         string            `json:"body"`
	TestResults  sandbox.Results   `json:"testResults"`
	Error        *string           `json:"error"`
}

// Errored reports whether the network call itself failed.
func (r *Result) Errored() bool {
	return r.Error != nil
}

// Failed reports whether the call succeeded but an assertion failed.
func (r *Result) Failed() bool {
	return !r.Errored() && r.TestResults.Failures > 0
}

// Passed reports a successful call with zero failing assertions.
func (r *Result) Passed() bool {
	return !r.Errored() && r.TestResults.Failures == 0
}

// Summary is the aggregate outcome of one run. Total always equals
// Passed+Failures+Errors+Skipped; skipped requests are never present in
// Requests.
type Summary struct {
	Collection string   `json:"collection"`
	Timestamp  string   `json:"timestamp"`
	Total      int      `json:"total"`
	Passed     int      `json:"passed"`
	Failures   int      `json:"failures"`
	Errors     int      `json:"errors"`
	Skipped    int      `json:"skipped"`
	Duration   int64    `json:"duration"`
	Requests   []Result `json:"requests"`
}

// Run executes every request of the collection in flattened order,
// strictly sequentially, and returns a fresh summary. Per-request failures
// never propagate; they classify the request instead.
func (r *Runner) Run(ctx context.Context, col *collection.Collection, vars map[string]string) *Summary {
	flat := col.Flatten()

	summary := &Summary{
		Collection: col.Name,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Requests:   []Result{},
	}
	start := time.Now()

	var limiter *rate.Limiter
	if r.opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.opts.Rate), 1)
	}

	for i := range flat {
		if i > 0 && r.opts.Delay > 0 {
			wait(ctx, r.opts.Delay)
		}
		if limiter != nil {
			_ = limiter.Wait(ctx)
		}

		result := r.executeRequest(ctx, &flat[i], vars)
		summary.Requests = append(summary.Requests, result)

		switch {
		case result.Errored():
			summary.Errors++
		case result.Failed():
			summary.Failures++
		default:
			summary.Passed++
		}

		if r.opts.Bail && !result.Passed() {
			summary.Skipped = len(flat) - i - 1
			break
		}
	}

	summary.Total = summary.Passed + summary.Failures + summary.Errors + summary.Skipped
	summary.Duration = time.Since(start).Milliseconds()
	return summary
}

func (r *Runner) executeRequest(ctx context.Context, req *collection.Request, vars map[string]string) Result {
	method := collection.NormalizeMethod(env.Substitute(req.Method, vars))

	result := Result{
		Name:        req.Name,
		Method:      method,
		URL:         env.Substitute(req.URL, vars),
		Headers:     map[string]string{},
		TestResults: sandbox.Results{Results: []sandbox.Assertion{}},
	}

	resp, err := r.client.Execute(ctx, &http.Request{
		Method:  result.Method,
		URL:     result.URL,
		Headers: env.ResolveHeaders(req.Headers, vars),
		Body:    env.Substitute(req.Body, vars),
	})
	if err != nil {
		msg := err.Error()
		result.Error = &msg
		return result
	}

	status := resp.StatusCode
	result.Status = &status
	result.StatusText = resp.StatusText
	result.ResponseTime = resp.DurationMs()
	result.Headers = resp.Headers
	result.Body = resp.Body
	result.TestResults = sandbox.Run(req.TestScript(), resp, resp.DurationMs())

	return result
}

func wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
