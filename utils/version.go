package utils

// Commit is the version string reported to MCP clients. It is overridden at
// build time via -ldflags "-X nrf-mcp/utils.Commit=<git sha>".
var Commit = "dev"
