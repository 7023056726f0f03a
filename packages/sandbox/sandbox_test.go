package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V1Zak/postman-helper-sub000/packages/http"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: body}
}

func TestRun_PassingAssertion(t *testing.T) {
	results := Run("tests['ok'] = responseCode.code === 200;", response(200, ""), 10)

	assert.Equal(t, 1, results.Total)
	assert.Equal(t, 1, results.Passed)
	assert.Equal(t, 0, results.Failures)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "ok", results.Results[0].Name)
	assert.True(t, results.Results[0].Passed)
}

func TestRun_FailingAssertion(t *testing.T) {
	results := Run("tests['created'] = responseCode.code === 201;", response(200, ""), 10)

	assert.Equal(t, 1, results.Total)
	assert.Equal(t, 0, results.Passed)
	assert.Equal(t, 1, results.Failures)
	assert.False(t, results.Results[0].Passed)
}

func TestRun_MultipleAssertionsKeepOrder(t *testing.T) {
	script := `
		tests['first'] = true;
		tests['second'] = false;
		tests['third'] = 1 + 1 === 2;
	`
	results := Run(script, response(200, ""), 10)

	require.Len(t, results.Results, 3)
	assert.Equal(t, "first", results.Results[0].Name)
	assert.Equal(t, "second", results.Results[1].Name)
	assert.Equal(t, "third", results.Results[2].Name)
	assert.Equal(t, 3, results.Total)
	assert.Equal(t, 2, results.Passed)
	assert.Equal(t, 1, results.Failures)
}

func TestRun_IntegerLikeNamesKeepOrder(t *testing.T) {
	script := `
		tests['status ok'] = true;
		tests['200'] = responseCode.code === 200;
		tests['body present'] = true;
	`
	results := Run(script, response(200, "{}"), 10)

	require.Len(t, results.Results, 3)
	assert.Equal(t, "status ok", results.Results[0].Name)
	assert.Equal(t, "200", results.Results[1].Name)
	assert.Equal(t, "body present", results.Results[2].Name)
	assert.Equal(t, 3, results.Passed)
}

func TestRun_TruthinessCoercion(t *testing.T) {
	script := `
		tests['truthy string'] = 'yes';
		tests['zero'] = 0;
		tests['empty string'] = '';
		tests['object'] = {};
	`
	results := Run(script, response(200, ""), 10)

	require.Len(t, results.Results, 4)
	assert.True(t, results.Results[0].Passed)
	assert.False(t, results.Results[1].Passed)
	assert.False(t, results.Results[2].Passed)
	assert.True(t, results.Results[3].Passed)
}

func TestRun_EmptyScript(t *testing.T) {
	for _, script := range []string{"", "   ", "\n\t"} {
		results := Run(script, response(200, ""), 10)

		assert.Equal(t, Results{Results: []Assertion{}}, results)
	}
}

func TestRun_ResponseBodyHelpers(t *testing.T) {
	script := `
		tests['has'] = responseBody.has('world');
		tests['has not'] = !responseBody.has('nope');
		tests['raw'] = String(responseBody) === '{"hello": "world"}';
		tests['json'] = responseBody.json().hello === 'world';
	`
	results := Run(script, response(200, `{"hello": "world"}`), 10)

	assert.Equal(t, 4, results.Passed, "results: %+v", results.Results)
}

func TestRun_JSONParseFailureYieldsNull(t *testing.T) {
	results := Run("tests['null'] = responseBody.json() === null;", response(200, "not json"), 10)

	assert.Equal(t, 1, results.Passed)
}

func TestRun_ResponseTimeBinding(t *testing.T) {
	results := Run("tests['fast'] = responseTime < 100;", response(200, ""), 42)

	assert.Equal(t, 1, results.Passed)
}

func TestRun_SyntaxError(t *testing.T) {
	results := Run("tests['x' = true;", response(200, ""), 10)

	require.Len(t, results.Results, 1)
	assert.Equal(t, 1, results.Total)
	assert.Equal(t, 1, results.Failures)
	assert.Equal(t, "Script Execution", results.Results[0].Name)
	assert.False(t, results.Results[0].Passed)
	assert.NotEmpty(t, results.Results[0].Error)
}

func TestRun_RuntimeError(t *testing.T) {
	results := Run("tests['x'] = someUndefinedName.field;", response(200, ""), 10)

	require.Len(t, results.Results, 1)
	assert.Equal(t, "Script Execution", results.Results[0].Name)
	assert.NotEmpty(t, results.Results[0].Error)
}

func TestRun_InfiniteLoopIsTerminated(t *testing.T) {
	results := Run("while (true) {}", response(200, ""), 10)

	require.Len(t, results.Results, 1)
	assert.Equal(t, 1, results.Total)
	assert.Equal(t, "Script Execution", results.Results[0].Name)
	assert.False(t, results.Results[0].Passed)
	assert.Contains(t, results.Results[0].Error, "deadline")
}

func TestRun_HostBindingsAreAbsent(t *testing.T) {
	script := `
		tests['no process'] = typeof process === 'undefined';
		tests['no require'] = typeof require === 'undefined';
		tests['no module'] = typeof module === 'undefined';
		tests['no fs access'] = typeof Deno === 'undefined';
	`
	results := Run(script, response(200, ""), 10)

	assert.Equal(t, 4, results.Passed, "sandbox leaked a host binding: %+v", results.Results)
}

func TestRun_ReferencingHostGlobalFails(t *testing.T) {
	results := Run("tests['x'] = require('fs');", response(200, ""), 10)

	require.Len(t, results.Results, 1)
	assert.Equal(t, "Script Execution", results.Results[0].Name)
}
