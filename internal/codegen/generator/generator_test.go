package generator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
	cgen "github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator/c"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetadata() *meta.Metadata {
	md := &meta.Metadata{}
	for _, name := range []string{"a/one.proto", "b/two.proto", "three.proto"} {
		pkg := enumgen.ShortName(filepath.Dir(name))
		md.Files = append(md.Files, meta.File{
			Name:    name,
			Package: pkg,
			Enums: []*enumgen.EnumDescriptor{
				enumgen.NewEnumDescriptor(pkg+".State", pkg,
					enumgen.EnumValue{Name: "ON", Number: 1},
					enumgen.EnumValue{Name: "OFF", Number: 0},
				),
			},
		})
	}
	return md
}

func TestRenderKeepsFileOrder(t *testing.T) {
	g := New(t.TempDir(), testLogger(), cgen.Options{Version: "dev"}, 2)

	outs, err := g.Render(context.Background(), testMetadata())
	require.NoError(t, err)

	var paths []string
	for _, o := range outs {
		paths = append(paths, o.Path)
	}
	assert.Equal(t, []string{
		"a/one.pb-c.h", "a/one.pb-c.c",
		"b/two.pb-c.h", "b/two.pb-c.c",
		"three.pb-c.h", "three.pb-c.c",
	}, paths)
}

func TestRenderIsDeterministic(t *testing.T) {
	g := New(t.TempDir(), testLogger(), cgen.Options{Version: "dev"}, 0)

	first, err := g.Render(context.Background(), testMetadata())
	require.NoError(t, err)
	second, err := g.Render(context.Background(), testMetadata())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderWithCMake(t *testing.T) {
	g := New(t.TempDir(), testLogger(), cgen.Options{Version: "dev", CMakeTarget: "enums"}, 1)

	outs, err := g.Render(context.Background(), testMetadata())
	require.NoError(t, err)
	last := outs[len(outs)-1]
	assert.Equal(t, "CMakeLists.txt", last.Path)
	assert.Contains(t, string(last.Content), "    a/one.pb-c.c\n    b/two.pb-c.c\n    three.pb-c.c\n")
}

func TestRenderRejectsDuplicateOutputs(t *testing.T) {
	md := testMetadata()
	md.Files[0].Origin = "first/one.proto"
	dup := md.Files[0]
	dup.Origin = "second/one.proto"
	md.Files = append(md.Files, dup)

	g := New(t.TempDir(), testLogger(), cgen.Options{Version: "dev", CMakeTarget: "enums"}, 2)
	_, err := g.Render(context.Background(), md)
	require.ErrorIs(t, err, ErrDuplicateOutput)
	assert.ErrorContains(t, err, "a/one.pb-c.h from first/one.proto and second/one.proto")
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(t.TempDir(), testLogger(), cgen.Options{}, 1)
	_, err := g.Render(ctx, testMetadata())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWritesAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	g := New(dir, testLogger(), cgen.Options{Version: "dev"}, 4)

	require.NoError(t, g.Generate(context.Background(), testMetadata()))

	header := filepath.Join(dir, "a", "one.pb-c.h")
	data, err := os.ReadFile(header)
	require.NoError(t, err)
	assert.Contains(t, string(data), "typedef enum _A__State {")

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(header, old, old))

	require.NoError(t, g.Generate(context.Background(), testMetadata()))
	st, err := os.Stat(header)
	require.NoError(t, err)
	assert.True(t, st.ModTime().Equal(old), "unchanged file must not be rewritten")
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	changed, err := WriteFile(ctx, root, "x/y.h", []byte("one"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = WriteFile(ctx, root, "x/y.h", []byte("one"))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = WriteFile(ctx, root, "x/y.h", []byte("two"))
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(filepath.Join(root, "x", "y.h"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	leftovers, err := filepath.Glob(filepath.Join(root, "x", ".protoc-c-enum-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteFileRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	for _, rel := range []string{"", "../evil.h", "/abs.h", "a/../../evil.h"} {
		_, err := WriteFile(ctx, root, rel, []byte("x"))
		assert.Error(t, err, "path %q", rel)
	}
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest([]byte("same")), Digest([]byte("same")))
	assert.NotEqual(t, Digest([]byte("same")), Digest([]byte("other")))
}
