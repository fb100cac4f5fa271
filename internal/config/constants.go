package config

// FileName is the project configuration file looked up by Discover.
const FileName = "bvm.lua"

// Limits applied by Validate and ParseFile.
const (
	MaxBinaryCount = 256
	MaxPathLength  = 2048
	MaxFileSize    = 1 << 20
)

// Lua schema field names and globals
const (
	luaGlobalBvm     = "bvm"
	luaFieldBinaries = "binaries"
	luaFieldPath     = "path"
	luaFieldVersion  = "version"
)
