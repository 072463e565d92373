// Package config loads the edge-tools-mcp configuration.
//
// Configuration comes from an optional TOML file layered over built-in
// defaults, followed by environment overrides:
//
//	[log]
//	level = "debug"          # or EDGE_MCP_LOG_LEVEL
//	format = "text"
//
//	[server]
//	cache_limit = 16         # or EDGE_MCP_CACHE_LIMIT
//	atan_table_steps = 4096
//
//	[edge]
//	threshold_max = 0.1
//	fill_gaps = true
//
//	[gradient]
//	kernel = "sobel"
//	sigma = 1.4
//
// The [edge] and [gradient] tables provide the defaults for every tool call;
// arguments sent by the client override them field by field.
package config
