package lib

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"nrf-mcp/utils"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Per-operation timeouts. These are the only guard against a hung external
// tool; no operation retries.
const (
	buildTimeout = 300 * time.Second
	flashTimeout = 120 * time.Second
	resetTimeout = 30 * time.Second
	idsTimeout   = 15 * time.Second

	defaultUARTDuration = 5
	defaultUARTBaud     = 115200
)

// Tools bundles the collaborators every handler needs. The environment is
// resolved once at startup; handlers hold no other state across calls.
type Tools struct {
	Env    *Environment
	Runner Runner
	Ports  PortLister
	Logger *utils.MCPLogger
}

// NewTools wires the production collaborators.
func NewTools(env *Environment, logger *utils.MCPLogger) *Tools {
	return &Tools{
		Env:    env,
		Runner: NewCommandRunner(env),
		Ports:  ListPorts,
		Logger: logger,
	}
}

func (t *Tools) logInfof(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Infof(format, args...)
	}
}

func (t *Tools) logWarningf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Warningf(format, args...)
	}
}

// resolveBoard applies the board resolution order: explicit argument, VS Code
// sidecar, build_info.yml. An empty result means the caller must supply one.
func resolveBoard(explicit, samplePath string) string {
	if explicit != "" {
		return explicit
	}
	if board, ok := SidecarBoard(samplePath); ok {
		return board
	}
	if board, ok := BuildInfoBoard(samplePath); ok {
		return board
	}
	return ""
}

// HandleBuildTool builds a firmware sample with west.
func HandleBuildTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		samplePath, err := request.RequireString("sample_path")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid sample_path parameter: %v", err)), nil
		}
		pristine := request.GetBool("pristine", false)

		board := resolveBoard(request.GetString("board", ""), samplePath)
		if board == "" {
			return mcp.NewToolResultError("No board specified and no build/.vscode-nrf-connect.json found. Pass the 'board' argument."), nil
		}

		args := []string{"build", "-b", board, "--build-dir", "build"}
		if pristine {
			args = append(args, "--pristine")
		}

		t.logInfof("Building %s for %s", samplePath, board)
		result := t.Runner.Run(ctx, Request{
			Name:    t.Env.West,
			Args:    args,
			Dir:     samplePath,
			Timeout: buildTimeout,
		})

		label := fmt.Sprintf("BUILD %s (%s)", filepath.Base(samplePath), board)
		return mcp.NewToolResultText(Format(result, label)), nil
	}
}

// HandleFlashTool flashes a built sample, optionally rebuilding first. When
// the build step fails the flash step is skipped and only the build report is
// returned.
func HandleFlashTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		samplePath, err := request.RequireString("sample_path")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid sample_path parameter: %v", err)), nil
		}
		buildFirst := request.GetBool("build_first", false)
		snr := request.GetString("snr", "")

		progressToken := fmt.Sprintf("flash_%d", time.Now().Unix())
		sendProgress := func(progress float64, message string) {
			if t.Logger != nil {
				t.Logger.SendProgressNotification(progressToken, progress, 100, message)
			}
		}

		sample := filepath.Base(samplePath)
		var sections []string

		if buildFirst {
			board := resolveBoard(request.GetString("board", ""), samplePath)
			if board == "" {
				return mcp.NewToolResultError("No board specified for build step. Pass the 'board' argument."), nil
			}

			sendProgress(0, fmt.Sprintf("Building %s...", sample))
			buildResult := t.Runner.Run(ctx, Request{
				Name:    t.Env.West,
				Args:    []string{"build", "-b", board, "--build-dir", "build"},
				Dir:     samplePath,
				Timeout: buildTimeout,
			})
			sections = append(sections, Format(buildResult, fmt.Sprintf("BUILD %s", sample)))

			if !buildResult.OK {
				t.logWarningf("Build of %s failed, skipping flash", sample)
				return mcp.NewToolResultText(strings.Join(sections, "\n\n")), nil
			}
			sendProgress(50, "Build complete, flashing...")
		} else {
			sendProgress(0, fmt.Sprintf("Flashing %s...", sample))
		}

		args := []string{"flash", "--build-dir", "build"}
		if snr != "" {
			args = append(args, "--snr", snr)
		}

		flashResult := t.Runner.Run(ctx, Request{
			Name:    t.Env.West,
			Args:    args,
			Dir:     samplePath,
			Timeout: flashTimeout,
		})
		sections = append(sections, Format(flashResult, fmt.Sprintf("FLASH %s", sample)))
		sendProgress(100, "Flash finished")

		return mcp.NewToolResultText(strings.Join(sections, "\n\n")), nil
	}
}

// HandleReadUARTLogsTool captures UART output from the board for a fixed
// number of seconds.
func HandleReadUARTLogsTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		port := request.GetString("port", "")
		durationS := request.GetInt("duration_s", defaultUARTDuration)
		baud := request.GetInt("baud", defaultUARTBaud)

		if port == "" {
			ports, err := t.Ports()
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to enumerate serial ports: %v", err)), nil
			}
			preferred, ok := PreferredPort(ports)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("No serial port found. Available: %v", PortNames(ports))), nil
			}
			port = preferred.Name
			t.logInfof("Auto-detected serial port %s", port)
		}

		lines, err := ReadUART(port, baud, time.Duration(durationS)*time.Second)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read UART: %v", err)), nil
		}

		if len(lines) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No output from %s in %ds (baud=%d)", port, durationS, baud)), nil
		}

		header := fmt.Sprintf("=== UART LOG %s (%ds, %d baud) ===", port, durationS, baud)
		return mcp.NewToolResultText(header + "\n" + strings.Join(lines, "\n")), nil
	}
}

// HandleResetBoardTool hard-resets the board via nrfjprog.
func HandleResetBoardTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snr := request.GetString("snr", "")

		args := []string{"--reset"}
		if snr != "" {
			args = append(args, "--snr", snr)
		}

		result := t.Runner.Run(ctx, Request{
			Name:    t.Env.Nrfjprog,
			Args:    args,
			Timeout: resetTimeout,
		})

		return mcp.NewToolResultText(Format(result, "RESET")), nil
	}
}

// HandleListBoardsTool lists attached J-Link probes and serial ports.
func HandleListBoardsTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := t.Runner.Run(ctx, Request{
			Name:    t.Env.Nrfjprog,
			Args:    []string{"--ids"},
			Timeout: idsTimeout,
		})

		ports, err := t.Ports()
		if err != nil {
			t.logWarningf("Serial port enumeration failed: %v", err)
		}

		output := Format(result, "J-LINK BOARDS")
		output += "\n\n=== SERIAL PORTS ===\n"
		output += FormatPorts(ports)

		return mcp.NewToolResultText(output), nil
	}
}

// HandleGetBuildInfoTool returns the raw build sidecar files for a sample.
func HandleGetBuildInfoTool(t *Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		samplePath, err := request.RequireString("sample_path")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid sample_path parameter: %v", err)), nil
		}

		return mcp.NewToolResultText(BuildInfoFiles(samplePath)), nil
	}
}
