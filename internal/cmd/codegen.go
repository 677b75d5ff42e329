package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/common"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator"
	cgen "github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator/c"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/scanner"
)

// Generate renders C enum sources from descriptor sets and schema files into an output directory.
type Generate struct {
	DescriptorSet []string `name:"descriptor-set" short:"d" help:"Binary FileDescriptorSet written by 'protoc -o' (repeatable)" env:"PROTOC_C_ENUM_DESCRIPTOR_SET"`
	Proto         []string `help:"Only generate these files of the descriptor sets (repeatable); by default files imported by another file in the set are skipped" env:"PROTOC_C_ENUM_PROTO"`
	Schema        []string `short:"s" help:"Enum schema file in yaml, toml or json (repeatable)" env:"PROTOC_C_ENUM_SCHEMA"`
	Output        string   `short:"o" help:"Output directory for generated .pb-c.h/.pb-c.c files" default:"." type:"path" env:"PROTOC_C_ENUM_OUTPUT"`
	DLLExport     string   `name:"dllexport" help:"Qualifier placed before every descriptor declaration, e.g. MYLIB_API" env:"PROTOC_C_ENUM_DLLEXPORT"`
	CMakeTarget   string   `name:"cmake-target" help:"Also write a CMakeLists.txt building the sources as this static library" env:"PROTOC_C_ENUM_CMAKE_TARGET"`
	Jobs          int      `help:"Files rendered concurrently; 0 uses GOMAXPROCS" default:"0" env:"PROTOC_C_ENUM_JOBS"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger)
}

// Execute scans the configured inputs and writes the generated files. It fails when
// no input is given and returns scanner.ErrNoEnums when the inputs declare no enum.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger) error {
	if len(g.DescriptorSet) == 0 && len(g.Schema) == 0 {
		return errors.New("nothing to generate: pass --descriptor-set and/or --schema")
	}

	md, err := g.scan(logger)
	if err != nil {
		return err
	}
	if md.EnumCount() == 0 {
		return scanner.ErrNoEnums
	}

	version, err := common.GetVersion()
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	gen := generator.New(g.Output, logger, cgen.Options{
		DLLExport:   g.DLLExport,
		Version:     version,
		CMakeTarget: g.CMakeTarget,
	}, g.Jobs)
	return gen.Generate(ctx, md)
}

func (g *Generate) scan(logger *slog.Logger) (*meta.Metadata, error) {
	md := &meta.Metadata{}

	for _, path := range g.DescriptorSet {
		logger.Debug("Scanning descriptor set", "file", path)
		files, err := scanner.ScanDescriptorSet(path, g.Proto)
		if err != nil {
			return nil, err
		}
		md.Files = append(md.Files, files...)
		logger.Info("Scanned descriptor set", "file", path, "protos", len(files))
	}

	for _, path := range g.Schema {
		logger.Debug("Scanning schema file", "file", path)
		f, err := scanner.ScanSchemaFile(path)
		if err != nil {
			return nil, err
		}
		md.Files = append(md.Files, f)
		logger.Info("Scanned schema file", "file", path, "enums", len(f.Enums))
	}

	return md, nil
}
