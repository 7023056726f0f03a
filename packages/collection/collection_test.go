package collection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_PreOrder(t *testing.T) {
	col := &Collection{
		Name:     "api",
		Requests: []Request{{Name: "R", URL: "http://a/r"}},
		Folders: []Folder{
			{
				Name: "users",
				Requests: []Request{
					{Name: "A", URL: "http://a/a"},
					{Name: "B", URL: "http://a/b"},
				},
				Folders: []Folder{
					{
						Name:     "admin",
						Requests: []Request{{Name: "C", URL: "http://a/c"}},
					},
				},
			},
		},
	}

	flat := col.Flatten()

	require.Len(t, flat, 4)
	names := make([]string, len(flat))
	for i, r := range flat {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"R", "A", "B", "C"}, names)
}

func TestFlatten_OwnRequestsBeforeChildFolders(t *testing.T) {
	col := &Collection{
		Name: "api",
		Folders: []Folder{
			{
				Name:     "first",
				Requests: []Request{{Name: "f1"}},
				Folders: []Folder{
					{Name: "nested", Requests: []Request{{Name: "n1"}, {Name: "n2"}}},
				},
			},
			{Name: "second", Requests: []Request{{Name: "s1"}}},
		},
	}

	flat := col.Flatten()

	names := make([]string, len(flat))
	for i, r := range flat {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"f1", "n1", "n2", "s1"}, names)
}

func TestFlatten_Empty(t *testing.T) {
	col := &Collection{Name: "empty"}

	flat := col.Flatten()

	require.NotNil(t, flat)
	assert.Empty(t, flat)
}

func TestHeaderSet_ObjectForm(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{
		"name": "r",
		"url": "http://x",
		"headers": {"Accept": "application/json", "X-Api-Key": "{{key}}"}
	}`), &req)

	require.NoError(t, err)
	require.Len(t, req.Headers, 2)
	// Object-form keys are ordered alphabetically after normalization.
	assert.Equal(t, Header{Key: "Accept", Value: "application/json"}, req.Headers[0])
	assert.Equal(t, Header{Key: "X-Api-Key", Value: "{{key}}"}, req.Headers[1])
}

func TestHeaderSet_ListForm(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{
		"name": "r",
		"url": "http://x",
		"headers": [
			{"key": "Accept", "value": "text/plain"},
			{"value": "orphan"},
			{"key": "Accept", "value": "application/json"}
		]
	}`), &req)

	require.NoError(t, err)
	assert.Len(t, req.Headers, 3)
	assert.Equal(t, "Accept", req.Headers[0].Key)
	assert.Equal(t, "", req.Headers[1].Key)
}

func TestHeaderSet_InvalidShape(t *testing.T) {
	var set HeaderSet
	err := json.Unmarshal([]byte(`"Accept: text/plain"`), &set)
	assert.Error(t, err)
}

func TestRequest_TestScript(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inline tests field",
			input:    `{"name":"r","url":"http://x","tests":"tests['ok']=true;"}`,
			expected: "tests['ok']=true;",
		},
		{
			name:     "testScript alias",
			input:    `{"name":"r","url":"http://x","testScript":"tests['ok']=true;"}`,
			expected: "tests['ok']=true;",
		},
		{
			name:     "event with string exec",
			input:    `{"name":"r","url":"http://x","event":[{"listen":"test","script":{"exec":"tests['a']=1;"}}]}`,
			expected: "tests['a']=1;",
		},
		{
			name:     "event with array exec joined by newlines",
			input:    `{"name":"r","url":"http://x","event":[{"listen":"test","script":{"exec":["tests['a']=1;","tests['b']=2;"]}}]}`,
			expected: "tests['a']=1;\ntests['b']=2;",
		},
		{
			name:     "non-test events ignored",
			input:    `{"name":"r","url":"http://x","event":[{"listen":"prerequest","script":{"exec":"nope"}}]}`,
			expected: "",
		},
		{
			name:     "no script",
			input:    `{"name":"r","url":"http://x"}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req Request
			require.NoError(t, json.Unmarshal([]byte(tt.input), &req))
			assert.Equal(t, tt.expected, req.TestScript())
		})
	}
}

func TestRequest_MethodOrDefault(t *testing.T) {
	req := Request{Name: "r", URL: "http://x"}
	assert.Equal(t, "GET", req.MethodOrDefault())

	req.Method = "post"
	assert.Equal(t, "POST", req.MethodOrDefault())
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "GET", NormalizeMethod(""))
	assert.Equal(t, "DELETE", NormalizeMethod("delete"))
	assert.Equal(t, "PATCH", NormalizeMethod("PATCH"))
}
