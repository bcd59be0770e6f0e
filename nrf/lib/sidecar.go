package lib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Sidecar files written into build/ by the nRF Connect tooling. They are
// externally produced and read-only here.
const (
	vscodeConfigName = ".vscode-nrf-connect.json"
	buildInfoName    = "build_info.yml"
	domainsName      = "domains.yaml"
)

// sidecarSchema describes the part of .vscode-nrf-connect.json we rely on.
// A sidecar that does not match is treated the same as a missing one.
const sidecarSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "board": { "type": "string", "minLength": 1 }
  },
  "required": ["board"]
}`

var compiledSidecarSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("sidecar.schema.json", strings.NewReader(sidecarSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("sidecar.schema.json")
}()

// SidecarBoard reads the board target from the sample's
// build/.vscode-nrf-connect.json. Any read, parse or schema failure reports
// "not found" rather than an error; the caller falls through to its next
// board source.
func SidecarBoard(samplePath string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(samplePath, "build", vscodeConfigName))
	if err != nil {
		return "", false
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", false
	}
	if err := compiledSidecarSchema.Validate(doc); err != nil {
		return "", false
	}

	board := doc.(map[string]interface{})["board"].(string)
	return board, true
}

// buildInfo mirrors the cmake section of build_info.yml.
type buildInfo struct {
	Cmake struct {
		Board struct {
			Name       string `yaml:"name"`
			Qualifiers string `yaml:"qualifiers"`
		} `yaml:"board"`
	} `yaml:"cmake"`
}

// BuildInfoBoard recovers the board target from build/build_info.yml, the
// fallback when no VS Code sidecar exists. Qualifiers are joined onto the
// board name the way west expects them (name/qualifiers).
func BuildInfoBoard(samplePath string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(samplePath, "build", buildInfoName))
	if err != nil {
		return "", false
	}

	var info buildInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return "", false
	}

	board := info.Cmake.Board.Name
	if board == "" {
		return "", false
	}
	if q := info.Cmake.Board.Qualifiers; q != "" {
		board = board + "/" + q
	}
	return board, true
}

// BuildInfoFiles concatenates the raw contents of the three build sidecar
// files, with a NOT FOUND marker for each one that is missing. The files are
// opaque text at this layer.
func BuildInfoFiles(samplePath string) string {
	buildDir := filepath.Join(samplePath, "build")
	var out []string

	for _, name := range []string{vscodeConfigName, buildInfoName, domainsName} {
		data, err := os.ReadFile(filepath.Join(buildDir, name))
		if err != nil {
			out = append(out, fmt.Sprintf("=== %s: NOT FOUND ===", name))
			continue
		}
		out = append(out, fmt.Sprintf("=== %s ===", name))
		out = append(out, string(data))
	}

	return strings.Join(out, "\n\n")
}
