package cgen

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func demoFile() *meta.File {
	return &meta.File{
		Name:    "demo/color.proto",
		Package: "demo",
		Enums: []*enumgen.EnumDescriptor{
			enumgen.NewEnumDescriptor("demo.Color", "demo",
				enumgen.EnumValue{Name: "RED", Number: 0},
				enumgen.EnumValue{Name: "ALPHA", Number: -1},
			),
		},
	}
}

const wantHeader = `/* Generated by protoc-c-enum 1.2.3.  DO NOT EDIT! */
/* Generated from: demo/color.proto */

#ifndef PROTOBUF_C_demo_2fcolor_2eproto__INCLUDED
#define PROTOBUF_C_demo_2fcolor_2eproto__INCLUDED

#include <protobuf-c/protobuf-c.h>

PROTOBUF_C__BEGIN_DECLS

/* --- enums --- */

typedef enum _Demo__Color {
  DEMO__COLOR__RED = 0,
  DEMO__COLOR__ALPHA = -1,
} Demo__Color;

/* --- descriptors --- */

extern const ProtobufCEnumDescriptor    demo__color__descriptor;

PROTOBUF_C__END_DECLS


#endif  /* PROTOBUF_C_demo_2fcolor_2eproto__INCLUDED */
`

func TestGenerate(t *testing.T) {
	outs, err := Generate(discardLogger(), demoFile(), Options{Version: "1.2.3"})
	require.NoError(t, err)
	require.Len(t, outs, 2)

	assert.Equal(t, "demo/color.pb-c.h", outs[0].Path)
	assert.Equal(t, wantHeader, string(outs[0].Content))

	assert.Equal(t, "demo/color.pb-c.c", outs[1].Path)
	src := string(outs[1].Content)
	assert.Contains(t, src, "#include \"demo/color.pb-c.h\"\n")
	assert.Contains(t, src, "const ProtobufCEnumValue demo__color_enum_values_by_number[2] =\n{\n  { \"ALPHA\", \"DEMO__COLOR__ALPHA\", -1 },\n  { \"RED\", \"DEMO__COLOR__RED\", 0 },\n};\n")
	assert.Contains(t, src, "const ProtobufCEnumDescriptor demo__color__descriptor =\n")
}

func TestGenerateWithDLLExport(t *testing.T) {
	outs, err := Generate(discardLogger(), demoFile(), Options{Version: "1.2.3", DLLExport: "DEMO_API"})
	require.NoError(t, err)
	assert.Contains(t, string(outs[0].Content), "extern DEMO_API const ProtobufCEnumDescriptor    demo__color__descriptor;\n")
}

func TestGenerateFileWithoutEnums(t *testing.T) {
	outs, err := Generate(discardLogger(), &meta.File{Name: "empty.proto"}, Options{Version: "dev"})
	require.NoError(t, err)
	assert.Contains(t, string(outs[0].Content), "/* --- enums --- */\n\n/* --- descriptors --- */\n\n\nPROTOBUF_C__END_DECLS")
	assert.Equal(t, "empty.pb-c.c", outs[1].Path)
}

func TestOutputBase(t *testing.T) {
	assert.Equal(t, "foo/bar", OutputBase("foo/bar.proto"))
	assert.Equal(t, "foo/bar", OutputBase(`foo\bar.yaml`))
	assert.Equal(t, "noext", OutputBase("noext"))
	assert.Equal(t, "dir.v1/file", OutputBase("dir.v1/file.proto"))
}

func TestGenerateCMake(t *testing.T) {
	out, err := GenerateCMake([]string{"b.pb-c.c", "a.pb-c.c"}, Options{Version: "dev", CMakeTarget: "demo_enums"})
	require.NoError(t, err)
	assert.Equal(t, "CMakeLists.txt", out.Path)
	assert.Contains(t, string(out.Content), "add_library(demo_enums STATIC\n    a.pb-c.c\n    b.pb-c.c\n)\n")
}
