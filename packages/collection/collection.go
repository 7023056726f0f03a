package collection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Collection is the canonical in-memory request tree handed to the runner.
// The root and nested folders share the same requests/folders shape.
type Collection struct {
	Name     string    `json:"name"`
	Requests []Request `json:"requests,omitempty"`
	Folders  []Folder  `json:"folders,omitempty"`
}

type Folder struct {
	Name     string    `json:"name"`
	Requests []Request `json:"requests,omitempty"`
	Folders  []Folder  `json:"folders,omitempty"`
}

type Request struct {
	Name    string    `json:"name"`
	Method  string    `json:"method,omitempty"`
	URL     string    `json:"url"`
	Headers HeaderSet `json:"headers,omitempty"`
	Body    string    `json:"body,omitempty"`
	Tests   string    `json:"tests,omitempty"`
	Events  []Event   `json:"event,omitempty"`
}

// Event carries a test script in the event-style location
// [{listen: "test", script: {exec: ...}}].
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

type Script struct {
	Exec ExecLines `json:"exec"`
}

// ExecLines accepts either a single string or an array of lines,
// normalized to one newline-joined script.
type ExecLines string

func (e *ExecLines) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = ExecLines(single)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("script exec must be a string or array of strings")
	}
	*e = ExecLines(strings.Join(lines, "\n"))
	return nil
}

// UnmarshalJSON also accepts the script under a "testScript" key, used by
// some exported collections instead of "tests".
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	aux := struct {
		*plain
		TestScript string `json:"testScript"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.Tests == "" {
		r.Tests = aux.TestScript
	}
	return nil
}

// TestScript returns the request's assertion source, preferring the inline
// tests field over an event-style "test" script. Empty when the request
// carries no assertions.
func (r *Request) TestScript() string {
	if r.Tests != "" {
		return r.Tests
	}
	for _, ev := range r.Events {
		if ev.Listen == "test" && ev.Script.Exec != "" {
			return string(ev.Script.Exec)
		}
	}
	return ""
}

// NormalizeMethod upper-cases an HTTP method, defaulting blank to GET.
func NormalizeMethod(method string) string {
	if method == "" {
		return "GET"
	}
	return strings.ToUpper(method)
}

// MethodOrDefault returns the request method, defaulting to GET.
func (r *Request) MethodOrDefault() string {
	return NormalizeMethod(r.Method)
}

// Flatten linearizes the tree into execution order: a node's own requests
// first, then each child folder depth-first, at every level.
func (c *Collection) Flatten() []Request {
	var out []Request
	out = append(out, c.Requests...)
	for i := range c.Folders {
		out = append(out, flattenFolder(&c.Folders[i])...)
	}
	if out == nil {
		out = []Request{}
	}
	return out
}

func flattenFolder(f *Folder) []Request {
	var out []Request
	out = append(out, f.Requests...)
	for i := range f.Folders {
		out = append(out, flattenFolder(&f.Folders[i])...)
	}
	return out
}
