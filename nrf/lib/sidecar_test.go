package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBuildFile(t *testing.T, sample, name, content string) {
	t.Helper()
	dir := filepath.Join(sample, "build")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSidecarBoard(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, vscodeConfigName, `{"board":"nrf54l15dk/nrf54l15/cpuapp"}`)

	board, ok := SidecarBoard(sample)
	require.True(t, ok)
	assert.Equal(t, "nrf54l15dk/nrf54l15/cpuapp", board)
}

func TestSidecarBoardMissingFile(t *testing.T) {
	_, ok := SidecarBoard(t.TempDir())
	assert.False(t, ok)
}

func TestSidecarBoardMalformedJSON(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, vscodeConfigName, `{"board": "nrf54`)

	_, ok := SidecarBoard(sample)
	assert.False(t, ok)
}

func TestSidecarBoardSchemaRejection(t *testing.T) {
	cases := map[string]string{
		"wrong type":  `{"board": 42}`,
		"empty board": `{"board": ""}`,
		"no board":    `{"runner": "jlink"}`,
		"not object":  `["board"]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			sample := t.TempDir()
			writeBuildFile(t, sample, vscodeConfigName, content)

			_, ok := SidecarBoard(sample)
			assert.False(t, ok)
		})
	}
}

func TestBuildInfoBoard(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, buildInfoName, `
version: 1
cmake:
  board:
    name: nrf54l15dk
    qualifiers: nrf54l15/cpuapp
`)

	board, ok := BuildInfoBoard(sample)
	require.True(t, ok)
	assert.Equal(t, "nrf54l15dk/nrf54l15/cpuapp", board)
}

func TestBuildInfoBoardWithoutQualifiers(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, buildInfoName, `
cmake:
  board:
    name: nrf52840dk
`)

	board, ok := BuildInfoBoard(sample)
	require.True(t, ok)
	assert.Equal(t, "nrf52840dk", board)
}

func TestBuildInfoBoardMalformedYAML(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, buildInfoName, "cmake: [unclosed")

	_, ok := BuildInfoBoard(sample)
	assert.False(t, ok)
}

func TestBuildInfoFilesAllMissing(t *testing.T) {
	out := BuildInfoFiles(t.TempDir())

	assert.Contains(t, out, "=== .vscode-nrf-connect.json: NOT FOUND ===")
	assert.Contains(t, out, "=== build_info.yml: NOT FOUND ===")
	assert.Contains(t, out, "=== domains.yaml: NOT FOUND ===")
}

func TestBuildInfoFilesMixed(t *testing.T) {
	sample := t.TempDir()
	writeBuildFile(t, sample, vscodeConfigName, `{"board":"nrf54l15dk"}`)
	writeBuildFile(t, sample, domainsName, "default: app\n")

	out := BuildInfoFiles(sample)

	assert.Contains(t, out, "=== .vscode-nrf-connect.json ===")
	assert.Contains(t, out, `{"board":"nrf54l15dk"}`)
	assert.Contains(t, out, "=== build_info.yml: NOT FOUND ===")
	assert.Contains(t, out, "=== domains.yaml ===")
	assert.Contains(t, out, "default: app")
}
