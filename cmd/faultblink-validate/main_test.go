package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faultblink.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_Valid(t *testing.T) {
	path := writeFile(t, `
kind = "deadbeef"
pin = "GPIO21"
`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--config", path}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "kind deadbeef on GPIO21, dummy")
}

func TestRun_Invalid(t *testing.T) {
	path := writeFile(t, `
pattern = "10x"
`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--config", path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Validation failed")
	assert.Contains(t, stderr.String(), "invalid pattern")
}

func TestRun_UnknownKey(t *testing.T) {
	path := writeFile(t, `
kind = "unknown"
switch_count = 4
`)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run([]string{"--config", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "switch_count")
}

func TestRun_OverrideFromFlag(t *testing.T) {
	path := writeFile(t, `driver = "dummy"`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--config", path, "--code", "9"}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "code 9")
}

func TestRun_MissingConfigFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--config flag is required")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"--version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "commit")
}
