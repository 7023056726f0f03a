// Package runner orchestrates collection execution.
//
// Requests run strictly sequentially in flattened pre-order. Each request
// is substituted, executed, asserted and classified as passed, failed or
// errored; bail mode stops at the first non-passing request and counts the
// rest as skipped.
package runner
