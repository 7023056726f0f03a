package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PostmanEnvironment(t *testing.T) {
	vars, err := Parse([]byte(`{
		"name": "staging",
		"values": [
			{"key": "host", "value": "https://staging.example.com"},
			{"key": "token", "value": "abc", "enabled": true},
			{"key": "legacy", "value": "old", "enabled": false}
		]
	}`))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":  "https://staging.example.com",
		"token": "abc",
	}, vars)
}

func TestParse_FlatMap(t *testing.T) {
	vars, err := Parse([]byte(`{"host": "http://localhost", "port": 8080, "debug": true, "none": null}`))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost", vars["host"])
	assert.Equal(t, "8080", vars["port"])
	assert.Equal(t, "true", vars["debug"])
	assert.Equal(t, "", vars["none"])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.env")
	require.NoError(t, os.WriteFile(path, []byte("HOST=http://localhost\nTOKEN=abc\n"), 0o644))

	vars, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost", vars["HOST"])
	assert.Equal(t, "abc", vars["TOKEN"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
