package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/cmd"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/configpaths"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/log"
)

func main() {
	args := pluginArgs(filepath.Base(os.Args[0]), os.Args[1:])

	userCfg := findUserConfig(args)
	jsonPaths, yamlPaths, tomlPaths := configpaths.DefaultCandidatePaths(userCfg)

	var cli cmd.CLI
	parser, err := kong.New(&cli,
		kong.Name(configpaths.AppName),
		kong.Description("Generate protobuf-c enum definitions and descriptors"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build command line: " + err.Error() + "\n")
		os.Exit(2)
	}
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	// protoc owns stdout in plugin mode
	plugin := ctx.Command() == "plugin"

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, plugin, log.StdOutputs())
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var rawLogger log.RawLogger
	if cli.Log.RawFile != "" {
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			rawLogger = log.NewRaw(nil)
		} else {
			rawLogger = log.NewRaw(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		rawLogger = log.NewRaw(os.Stderr)
	} else {
		rawLogger = log.NewRaw(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// pluginArgs makes a bare invocation as protoc-gen-* run the plugin command,
// which is how protoc starts plugins.
func pluginArgs(binary string, args []string) []string {
	binary = strings.TrimSuffix(binary, ".exe")
	if len(args) == 0 && strings.HasPrefix(binary, "protoc-gen-") {
		return []string{"plugin"}
	}
	return args
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("PROTOC_C_ENUM_CONFIG"); v != "" {
		return v
	}
	return ""
}
