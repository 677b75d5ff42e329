package meta

import "github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"

// File is one schema source and the enums declared in it, in declaration order.
// Shared between the scanners and the C file generator.
type File struct {
	Name    string // source path, e.g. "foo/bar.proto"
	Origin  string // input the file was loaded from, for diagnostics; empty means Name
	Package string
	Enums   []*enumgen.EnumDescriptor
}

// Source names where f came from.
func (f *File) Source() string {
	if f.Origin != "" {
		return f.Origin
	}
	return f.Name
}

// Metadata holds everything scanned for one generation run.
type Metadata struct {
	Files []File
}

// EnumCount returns the number of enums across all files.
func (m *Metadata) EnumCount() int {
	n := 0
	for _, f := range m.Files {
		n += len(f.Enums)
	}
	return n
}
