package scanner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

// ErrUnsupportedFormat is returned for schema files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// SchemaFile is the hand-written enum schema accepted besides descriptor sets.
//
//	package: demo.v1
//	enums:
//	  - name: Color
//	    values:
//	      - {name: RED, number: 0}
type SchemaFile struct {
	Package string       `json:"package" yaml:"package" toml:"package"`
	Enums   []SchemaEnum `json:"enums" yaml:"enums" toml:"enums"`
}

// SchemaEnum is one enum of a SchemaFile. Name is relative to the package.
type SchemaEnum struct {
	Name   string              `json:"name" yaml:"name" toml:"name"`
	Values []enumgen.EnumValue `json:"values" yaml:"values" toml:"values"`
}

// ScanSchemaFile loads a YAML, TOML or JSON schema file, chosen by extension.
// The resulting file is named after the base name of path.
func ScanSchemaFile(path string) (meta.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return meta.File{}, fmt.Errorf("read schema %s: %w", path, err)
	}

	sf, err := ParseSchema(filepath.Ext(path), data)
	if err != nil {
		return meta.File{}, fmt.Errorf("parse schema %s: %w", path, err)
	}
	f, err := sf.File(filepath.Base(path))
	if err != nil {
		return meta.File{}, fmt.Errorf("schema %s: %w", path, err)
	}
	f.Origin = path
	return f, nil
}

// ParseSchema decodes data in the format named by ext (".yaml", ".yml", ".toml" or ".json").
func ParseSchema(ext string, data []byte) (*SchemaFile, error) {
	var sf SchemaFile
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sf)
	case ".toml":
		err = toml.Unmarshal(data, &sf)
	case ".json":
		err = json.Unmarshal(data, &sf)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return &sf, nil
}

// File converts the schema to a meta.File named name. Enum and value names must be non-empty.
func (sf *SchemaFile) File(name string) (meta.File, error) {
	f := meta.File{Name: name, Package: sf.Package}
	for i, e := range sf.Enums {
		if e.Name == "" {
			return meta.File{}, fmt.Errorf("enum #%d: missing name", i)
		}
		for j, v := range e.Values {
			if v.Name == "" {
				return meta.File{}, fmt.Errorf("enum %s value #%d: missing name", e.Name, j)
			}
		}
		fullName := e.Name
		if sf.Package != "" {
			fullName = sf.Package + "." + e.Name
		}
		f.Enums = append(f.Enums, enumgen.NewEnumDescriptor(fullName, sf.Package, e.Values...))
	}
	return f, nil
}
