package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nrf-mcp/nrf/lib"
	"nrf-mcp/utils"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

var (
	envFilePath string
)

func init() {
	flag.StringVar(&envFilePath, "env", "", "Path to .env file to load environment variables")
}

func main() {
	flag.Parse()

	// Load environment variables from .env file if specified
	if envFilePath != "" {
		err := godotenv.Load(envFilePath)
		if err != nil {
			log.Printf("Warning: Failed to load .env file '%s': %v", envFilePath, err)
		}
	}

	// Create a new MCP server
	s := server.NewMCPServer(
		"nRF MCP",
		utils.Commit,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	// Create MCP logger
	logger := utils.NewMCPLogger(s, "nrf-mcp")

	logger.Info("nRF MCP server starting up...")

	// Resolve the toolchain environment once; all handlers share it.
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not determine home directory: %v", err)
	}
	env := lib.ResolveEnvironment(home)
	logger.Infof("Toolchain: %q, SDK: %q, west: %q, nrfjprog: %q",
		env.Toolchain, env.SDK, env.West, env.Nrfjprog)

	tools := lib.NewTools(env, logger)

	// Add tools
	buildTool := CreateBuildTool()
	flashTool := CreateFlashTool()
	readUARTLogsTool := CreateReadUARTLogsTool()
	resetBoardTool := CreateResetBoardTool()
	listBoardsTool := CreateListBoardsTool()
	getBuildInfoTool := CreateGetBuildInfoTool()

	// Add tool handlers
	s.AddTool(buildTool, lib.InstrumentToolHandler("build", lib.HandleBuildTool(tools)))
	s.AddTool(flashTool, lib.InstrumentToolHandler("flash", lib.HandleFlashTool(tools)))
	s.AddTool(readUARTLogsTool, lib.InstrumentToolHandler("read_uart_logs", lib.HandleReadUARTLogsTool(tools)))
	s.AddTool(resetBoardTool, lib.InstrumentToolHandler("reset_board", lib.HandleResetBoardTool(tools)))
	s.AddTool(listBoardsTool, lib.InstrumentToolHandler("list_boards", lib.HandleListBoardsTool(tools)))
	s.AddTool(getBuildInfoTool, lib.InstrumentToolHandler("get_build_info", lib.HandleGetBuildInfoTool(tools)))

	// Optional Prometheus endpoint alongside the stdio transport.
	if addr := os.Getenv("NRF_MCP_METRICS_ADDR"); addr != "" {
		go func() {
			log.Printf("Serving metrics on %s", addr)
			if err := lib.ServeMetrics(addr); err != nil {
				log.Printf("Warning: metrics server stopped: %v", err)
			}
		}()
	}

	logger.Info("nRF MCP server ready")

	// Start the server
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("Server error: %v", err)
		fmt.Printf("Server error: %v\n", err)
	}
}
