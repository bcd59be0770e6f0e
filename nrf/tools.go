package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func CreateBuildTool() mcp.Tool {
	return mcp.NewTool("build",
		mcp.WithDescription("Build a Zephyr/nRF firmware sample using the nRF Connect SDK toolchain."),
		mcp.WithString("sample_path",
			mcp.Required(),
			mcp.Description("Absolute path to the sample directory (e.g. /home/user/ncs/v2.9.2/zephyr/samples/hello_world)."),
		),
		mcp.WithString("board",
			mcp.Description("Board target (e.g. nrf54l15dk/nrf54l15/cpuapp). If omitted, it is read from build/.vscode-nrf-connect.json or build/build_info.yml."),
		),
		mcp.WithBoolean("pristine",
			mcp.Description("Clean build (west build --pristine). Default false."),
		),
	)
}

func CreateFlashTool() mcp.Tool {
	return mcp.NewTool("flash",
		mcp.WithDescription("Flash firmware to a connected nRF board. Optionally build first."),
		mcp.WithString("sample_path",
			mcp.Required(),
			mcp.Description("Absolute path to the sample directory."),
		),
		mcp.WithString("board",
			mcp.Description("Board target. If omitted, it is read from build/.vscode-nrf-connect.json or build/build_info.yml."),
		),
		mcp.WithBoolean("build_first",
			mcp.Description("Build before flashing. Default false."),
		),
		mcp.WithString("snr",
			mcp.Description("J-Link serial number for multi-board setups."),
		),
	)
}

func CreateReadUARTLogsTool() mcp.Tool {
	return mcp.NewTool("read_uart_logs",
		mcp.WithDescription("Read UART logs from a connected nRF board for a given number of seconds."),
		mcp.WithString("port",
			mcp.Description("Serial port (e.g. /dev/ttyACM0). If omitted, auto-detects the first Nordic port."),
		),
		mcp.WithNumber("duration_s",
			mcp.Description("How many seconds to read. Default 5."),
		),
		mcp.WithNumber("baud",
			mcp.Description("Baud rate. Default 115200."),
		),
	)
}

func CreateResetBoardTool() mcp.Tool {
	return mcp.NewTool("reset_board",
		mcp.WithDescription("Hard reset the nRF board via nrfjprog."),
		mcp.WithString("snr",
			mcp.Description("J-Link serial number. If omitted, resets the first found board."),
		),
	)
}

func CreateListBoardsTool() mcp.Tool {
	return mcp.NewTool("list_boards",
		mcp.WithDescription("List connected nRF J-Link boards and their serial numbers, plus all serial ports."),
	)
}

func CreateGetBuildInfoTool() mcp.Tool {
	return mcp.NewTool("get_build_info",
		mcp.WithDescription("Read build_info.yml, domains.yaml and .vscode-nrf-connect.json from a sample's build directory."),
		mcp.WithString("sample_path",
			mcp.Required(),
			mcp.Description("Absolute path to the sample directory."),
		),
	)
}
