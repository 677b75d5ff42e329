package cgen

import (
	"log/slog"
	"path"
	"strings"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

// Options control the rendered C sources.
type Options struct {
	// DLLExport is placed in front of every descriptor declaration when set.
	DLLExport string
	// Version is stamped into the banner of every generated file.
	Version string
	// CMakeTarget, when set, adds a CMakeLists.txt building all sources as a static library.
	CMakeTarget string
}

// Output is one generated file, Path relative to the output root using forward slashes.
type Output struct {
	Path    string
	Content []byte
}

// OutputBase strips the schema extension from a source path: "foo/bar.proto" -> "foo/bar".
func OutputBase(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimSuffix(name, path.Ext(name))
}

// Generate renders <base>.pb-c.h and <base>.pb-c.c for one file.
func Generate(logger *slog.Logger, f *meta.File, opts Options) ([]Output, error) {
	base := OutputBase(f.Name)
	headerPath := base + ".pb-c.h"
	sourcePath := base + ".pb-c.c"

	header, err := renderHeader(f, opts)
	if err != nil {
		return nil, err
	}
	source, err := renderSource(f, headerPath, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rendered C enum sources", "file", f.Name, "enums", len(f.Enums), "header", headerPath, "source", sourcePath)
	return []Output{
		{Path: headerPath, Content: header},
		{Path: sourcePath, Content: source},
	}, nil
}
