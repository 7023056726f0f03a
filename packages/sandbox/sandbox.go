package sandbox

import (
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/V1Zak/postman-helper-sub000/packages/http"
)

// ScriptDeadline bounds a single script evaluation. It is intentionally
// shorter than the network timeout and not configurable: a runaway script
// cannot yield, so the engine interrupt is the only way out.
const ScriptDeadline = 2 * time.Second

// scriptResultName is the synthetic assertion name used when evaluation
// itself fails (syntax error, thrown exception, deadline interrupt).
const scriptResultName = "Script Execution"

// Assertion is one recorded tests[name] = expr outcome.
type Assertion struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Results aggregates the assertions of one script evaluation.
type Results struct {
	Total    int         `json:"total"`
	Passed   int         `json:"passed"`
	Failures int         `json:"failures"`
	Results  []Assertion `json:"results"`
}

// responseBodyWrapper builds the responseBody binding inside the sandbox:
// a String object carrying the raw body plus has() and a json() that
// swallows parse failures into null.
const responseBodyWrapper = `(function (raw) {
	var body = new String(raw);
	body.has = function (s) { return raw.indexOf(s) !== -1; };
	body.json = function () {
		try { return JSON.parse(raw); } catch (e) { return null; }
	};
	return body;
})`

// Run evaluates an assertion script against a response inside an isolated
// runtime. The script sees exactly four bindings: tests, responseCode,
// responseBody and responseTime. The host's process, modules and
// filesystem do not exist inside the runtime.
func Run(script string, resp *http.Response, responseTimeMs int64) Results {
	if strings.TrimSpace(script) == "" {
		return Results{Results: []Assertion{}}
	}

	vm := goja.New()

	tests := newTestLog()
	_ = vm.Set("tests", vm.NewDynamicObject(tests))

	responseCode := vm.NewObject()
	_ = responseCode.Set("code", resp.StatusCode)
	_ = vm.Set("responseCode", responseCode)

	if err := bindResponseBody(vm, resp.Body); err != nil {
		return scriptFailure(err.Error())
	}

	_ = vm.Set("responseTime", responseTimeMs)

	timer := time.AfterFunc(ScriptDeadline, func() {
		vm.Interrupt("deadline exceeded")
	})
	defer timer.Stop()

	if _, err := vm.RunString(script); err != nil {
		return scriptFailure(describeError(err))
	}

	return collect(tests)
}

func bindResponseBody(vm *goja.Runtime, body string) error {
	wrapper, err := vm.RunString(responseBodyWrapper)
	if err != nil {
		return err
	}
	wrap, ok := goja.AssertFunction(wrapper)
	if !ok {
		return errors.New("sandbox bootstrap is not callable")
	}
	bodyVal, err := wrap(goja.Undefined(), vm.ToValue(body))
	if err != nil {
		return err
	}
	return vm.Set("responseBody", bodyVal)
}

// testLog backs the tests binding. Recording assignments on the host side
// keeps assertion order equal to assignment order even for integer-like
// names, which a plain JS object would hoist ahead of the rest.
type testLog struct {
	order  []string
	values map[string]goja.Value
}

func newTestLog() *testLog {
	return &testLog{values: map[string]goja.Value{}}
}

func (l *testLog) Get(key string) goja.Value { return l.values[key] }

func (l *testLog) Set(key string, val goja.Value) bool {
	if _, seen := l.values[key]; !seen {
		l.order = append(l.order, key)
	}
	l.values[key] = val
	return true
}

func (l *testLog) Has(key string) bool {
	_, ok := l.values[key]
	return ok
}

func (l *testLog) Delete(key string) bool {
	if _, ok := l.values[key]; ok {
		delete(l.values, key)
		for i, k := range l.order {
			if k == key {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
	return true
}

func (l *testLog) Keys() []string { return l.order }

// collect converts every recorded tests entry into an assertion result,
// preserving assignment order and coercing values to booleans.
func collect(tests *testLog) Results {
	results := Results{Results: make([]Assertion, 0, len(tests.order))}

	for _, name := range tests.order {
		passed := tests.values[name].ToBoolean()
		results.Results = append(results.Results, Assertion{Name: name, Passed: passed})
		results.Total++
		if passed {
			results.Passed++
		} else {
			results.Failures++
		}
	}

	return results
}

func scriptFailure(message string) Results {
	return Results{
		Total:    1,
		Failures: 1,
		Results: []Assertion{{
			Name:   scriptResultName,
			Passed: false,
			Error:  message,
		}},
	}
}

func describeError(err error) string {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return "script execution exceeded the " + ScriptDeadline.String() + " deadline"
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return exception.Error()
	}

	return err.Error()
}
