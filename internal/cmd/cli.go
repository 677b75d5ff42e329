package cmd

// CLI is the root kong command model.
type CLI struct {
	ConfigFile string    `name:"config" help:"Configuration file (json, yaml or toml); flags and env override it" type:"path" env:"PROTOC_C_ENUM_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate Generate      `cmd:"" help:"Generate C enum sources from descriptor sets or schema files"`
	Plugin   Plugin        `cmd:"" help:"Run as a protoc plugin (reads CodeGeneratorRequest on stdin)"`
	Config   ConfigCommand `cmd:"" help:"Configuration helpers"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level   string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"PROTOC_C_ENUM_LOG_LEVEL"`
	File    string `help:"Write logs to this file in addition to stderr" type:"path" env:"PROTOC_C_ENUM_LOG_FILE"`
	RawFile string `name:"raw-file" help:"Dump raw plugin request/response bytes to this file" type:"path" env:"PROTOC_C_ENUM_LOG_RAW_FILE"`
}
