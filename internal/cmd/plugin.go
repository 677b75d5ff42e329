package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/common"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator"
	cgen "github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator/c"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/scanner"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/log"
)

// Plugin serves one protoc plugin exchange over stdin and stdout.
type Plugin struct {
	DLLExport string `name:"dllexport" help:"Default descriptor qualifier; the dllexport=<QUALIFIER> plugin parameter overrides it" env:"PROTOC_C_ENUM_DLLEXPORT"`
	Jobs      int    `help:"Files rendered concurrently; 0 uses GOMAXPROCS" default:"0" env:"PROTOC_C_ENUM_JOBS"`
}

// Run is called by Kong when the plugin command is executed.
func (p *Plugin) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("plugin mode reads a CodeGeneratorRequest from stdin; run it through protoc --plugin=protoc-gen-c-enum=<binary> --c-enum_out=<dir>")
	}
	return p.Serve(context.Background(), logger, rawLogger, os.Stdin, os.Stdout)
}

// Serve handles one protoc exchange. Problems with the request itself are
// reported to protoc through CodeGeneratorResponse.error; only I/O failures
// are returned.
func (p *Plugin) Serve(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	rawLogger.Log(true, data)

	var req pluginpb.CodeGeneratorRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	resp := p.respond(ctx, logger, &req)

	data, err = proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	rawLogger.Log(false, data)
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (p *Plugin) respond(ctx context.Context, logger *slog.Logger, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	fail := func(err error) *pluginpb.CodeGeneratorResponse {
		logger.Error("Plugin request failed", "error", err)
		resp.Error = proto.String(err.Error())
		return resp
	}

	opts, err := p.options(req.GetParameter())
	if err != nil {
		return fail(err)
	}

	files, err := scanner.FilesFromDescriptorSet(
		&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()},
		req.GetFileToGenerate(),
	)
	if err != nil {
		return fail(err)
	}
	md := &meta.Metadata{Files: files}
	logger.Info("Plugin request", "files", len(files), "enums", md.EnumCount(), "parameter", req.GetParameter())

	// rendered in memory; protoc writes the files
	outs, err := generator.New("", logger, opts, p.Jobs).Render(ctx, md)
	if err != nil {
		return fail(err)
	}
	for _, o := range outs {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(o.Path),
			Content: proto.String(string(o.Content)),
		})
	}
	return resp
}

// options parses the comma separated key=value plugin parameter.
func (p *Plugin) options(param string) (cgen.Options, error) {
	version, err := common.GetVersion()
	if err != nil {
		return cgen.Options{}, fmt.Errorf("get version: %w", err)
	}
	opts := cgen.Options{DLLExport: p.DLLExport, Version: version}

	for _, kv := range strings.Split(param, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, _ := strings.Cut(kv, "=")
		switch key {
		case "dllexport":
			opts.DLLExport = value
		case "cmake_target":
			opts.CMakeTarget = value
		default:
			return cgen.Options{}, fmt.Errorf("unknown plugin parameter %q", key)
		}
	}
	return opts, nil
}
