package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
)

const yamlSchema = `package: demo
enums:
  - name: Color
    values:
      - {name: RED, number: 0}
      - {name: ALPHA, number: -1}
  - name: Empty
`

const tomlSchema = `package = "demo"

[[enums]]
name = "Color"

  [[enums.values]]
  name = "RED"
  number = 0

  [[enums.values]]
  name = "ALPHA"
  number = -1

[[enums]]
name = "Empty"
`

const jsonSchema = `{
  "package": "demo",
  "enums": [
    {"name": "Color", "values": [{"name": "RED", "number": 0}, {"name": "ALPHA", "number": -1}]},
    {"name": "Empty"}
  ]
}`

func TestScanSchemaFile(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"enums.yaml", yamlSchema},
		{"enums.yml", yamlSchema},
		{"enums.toml", tomlSchema},
		{"enums.json", jsonSchema},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			f, err := ScanSchemaFile(path)
			require.NoError(t, err)

			assert.Equal(t, tt.file, f.Name)
			assert.Equal(t, path, f.Origin)
			assert.Equal(t, "demo", f.Package)
			require.Len(t, f.Enums, 2)

			assert.Equal(t, "demo.Color", f.Enums[0].FullName)
			assert.Equal(t, "Color", f.Enums[0].Name)
			assert.Equal(t, []enumgen.EnumValue{{Name: "RED", Number: 0}, {Name: "ALPHA", Number: -1}}, f.Enums[0].Values)

			assert.Equal(t, "demo.Empty", f.Enums[1].FullName)
			assert.Empty(t, f.Enums[1].Values)
		})
	}
}

func TestParseSchemaUnsupported(t *testing.T) {
	_, err := ParseSchema(".xml", []byte("<enums/>"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSchemaFileValidation(t *testing.T) {
	t.Run("missing enum name", func(t *testing.T) {
		sf := &SchemaFile{Enums: []SchemaEnum{{}}}
		_, err := sf.File("x.yaml")
		assert.ErrorContains(t, err, "missing name")
	})

	t.Run("missing value name", func(t *testing.T) {
		sf := &SchemaFile{Enums: []SchemaEnum{{Name: "E", Values: []enumgen.EnumValue{{Number: 1}}}}}
		_, err := sf.File("x.yaml")
		assert.ErrorContains(t, err, "enum E value #0")
	})

	t.Run("no package", func(t *testing.T) {
		sf := &SchemaFile{Enums: []SchemaEnum{{Name: "Bare"}}}
		f, err := sf.File("x.yaml")
		require.NoError(t, err)
		assert.Equal(t, "Bare", f.Enums[0].FullName)
		assert.Equal(t, "", f.Enums[0].Package)
	})
}
