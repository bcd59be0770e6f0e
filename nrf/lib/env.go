package lib

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Environment holds the resolved toolchain, SDK and tool locations used for
// every subprocess invocation. It is computed once at startup and shared
// read-only across handlers.
//
// Resolution precedence per field: explicit env var override, then filesystem
// probing of conventional nRF Connect SDK install locations, then a bare
// command name left to PATH lookup at execution time. Resolution never fails;
// a missing tool surfaces later as a spawn failure from the runner.
type Environment struct {
	Toolchain string // toolchain bundle root, "" if not found
	SDK       string // nRF Connect SDK version root, "" if not found
	West      string // west binary path, or bare "west"
	Nrfjprog  string // nrfjprog binary path, or bare "nrfjprog"
	JLinkDir  string // SEGGER J-Link install directory

	processEnv []string
}

const defaultJLinkDir = "/opt/SEGGER/JLink"

// ResolveEnvironment builds the execution environment for west and nrfjprog
// commands. home is the directory probed for ~/ncs installs.
func ResolveEnvironment(home string) *Environment {
	env := &Environment{}

	env.Toolchain = os.Getenv("NRF_TOOLCHAIN")
	if env.Toolchain == "" {
		env.Toolchain = autoDetectToolchain(home)
	}

	env.SDK = os.Getenv("NRF_SDK")
	if env.SDK == "" {
		env.SDK = autoDetectSDK(home)
	}

	env.West = os.Getenv("NRF_WEST")
	if env.West == "" {
		env.West = findWest(env.Toolchain)
	}

	env.Nrfjprog = os.Getenv("NRF_NRFJPROG")
	if env.Nrfjprog == "" {
		env.Nrfjprog = findNrfjprog(env.Toolchain)
	}

	env.JLinkDir = os.Getenv("JLINK_DIR")
	if env.JLinkDir == "" {
		env.JLinkDir = defaultJLinkDir
	}

	env.processEnv = buildProcessEnv(env)
	return env
}

// autoDetectToolchain finds the newest toolchain under <home>/ncs/toolchains
// that actually contains a west executable. Lexicographic order of the
// directory names is used as a proxy for version order.
func autoDetectToolchain(home string) string {
	dir := filepath.Join(home, "ncs", "toolchains")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		root := filepath.Join(dir, e.Name())
		if fileExists(filepath.Join(root, "usr", "local", "bin", "west")) ||
			fileExists(filepath.Join(root, "bin", "west")) {
			candidates = append(candidates, root)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.Strings(candidates)
	return candidates[len(candidates)-1]
}

// autoDetectSDK finds the newest SDK version under <home>/ncs. SDK roots are
// named v<version> and contain a zephyr/ tree.
func autoDetectSDK(home string) string {
	dir := filepath.Join(home, "ncs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var versions []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "v") {
			continue
		}
		root := filepath.Join(dir, e.Name())
		if dirExists(filepath.Join(root, "zephyr")) {
			versions = append(versions, root)
		}
	}
	if len(versions) == 0 {
		return ""
	}

	sort.Strings(versions)
	return versions[len(versions)-1]
}

func findWest(toolchain string) string {
	for _, candidate := range []string{
		filepath.Join(toolchain, "usr", "local", "bin", "west"),
		filepath.Join(toolchain, "bin", "west"),
	} {
		if toolchain != "" && fileExists(candidate) {
			return candidate
		}
	}
	return "west"
}

func findNrfjprog(toolchain string) string {
	for _, candidate := range []string{
		filepath.Join(toolchain, "bin", "nrfjprog"),
		filepath.Join(toolchain, "usr", "local", "bin", "nrfjprog"),
	} {
		if toolchain != "" && fileExists(candidate) {
			return candidate
		}
	}
	return "nrfjprog"
}

// buildProcessEnv copies the ambient environment, prepends the toolchain bin
// directories to PATH and adds the Zephyr build variables.
func buildProcessEnv(env *Environment) []string {
	ambient := os.Environ()
	result := make([]string, 0, len(ambient)+3)

	binDirs := ""
	if env.Toolchain != "" {
		binDirs = filepath.Join(env.Toolchain, "usr", "local", "bin") +
			string(os.PathListSeparator) + filepath.Join(env.Toolchain, "bin")
	}

	pathSet := false
	for _, e := range ambient {
		switch {
		case strings.HasPrefix(e, "PATH=") && binDirs != "":
			result = append(result, "PATH="+binDirs+string(os.PathListSeparator)+e[5:])
			pathSet = true
		case strings.HasPrefix(e, "ZEPHYR_BASE="),
			strings.HasPrefix(e, "ZEPHYR_SDK_INSTALL_DIR="),
			strings.HasPrefix(e, "JLINK_DIR="):
			// replaced below
		default:
			result = append(result, e)
		}
	}
	if !pathSet && binDirs != "" {
		result = append(result, "PATH="+binDirs)
	}

	if env.SDK != "" {
		result = append(result, "ZEPHYR_BASE="+filepath.Join(env.SDK, "zephyr"))
	}
	if env.Toolchain != "" {
		result = append(result, "ZEPHYR_SDK_INSTALL_DIR="+env.Toolchain)
	}
	if env.JLinkDir != "" {
		result = append(result, "JLINK_DIR="+env.JLinkDir)
	}

	return result
}

// ProcessEnv returns the environment passed to child processes.
func (e *Environment) ProcessEnv() []string {
	return e.processEnv
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
