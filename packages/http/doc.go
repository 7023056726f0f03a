// Package http executes single collection requests over the network.
//
// Each call opens one outbound connection bounded by the configured
// timeout; an expired deadline aborts the in-flight request. URLs are
// validated before any network activity.
package http
