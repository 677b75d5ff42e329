package scanner

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

// ErrNoEnums is returned when the scanned inputs declare no enum at all.
var ErrNoEnums = errors.New("no enums found")

// ScanDescriptorSet reads a binary FileDescriptorSet (as written by `protoc -o`)
// and returns one meta.File per requested file. Files are requested by path in
// only; when only is empty the requested files are those no other file in the
// set imports, so imports pulled in by --include_imports are not generated.
func ScanDescriptorSet(path string, only []string) ([]meta.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set %s: %w", path, err)
	}

	var fds descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &fds); err != nil {
		return nil, fmt.Errorf("decode descriptor set %s: %w", path, err)
	}

	if len(only) == 0 {
		only = RootFiles(&fds)
	}
	files, err := FilesFromDescriptorSet(&fds, only)
	if err != nil {
		return nil, fmt.Errorf("descriptor set %s: %w", path, err)
	}
	for i := range files {
		files[i].Origin = path + ":" + files[i].Name
	}
	return files, nil
}

// RootFiles returns, in set order, the files of fds that no other file in fds imports.
func RootFiles(fds *descriptorpb.FileDescriptorSet) []string {
	imported := make(map[string]bool)
	for _, f := range fds.GetFile() {
		for _, dep := range f.GetDependency() {
			imported[dep] = true
		}
	}
	var roots []string
	for _, f := range fds.GetFile() {
		if !imported[f.GetName()] {
			roots = append(roots, f.GetName())
		}
	}
	return roots
}

// FilesFromDescriptorSet converts the files of fds to meta.File in set order.
// If only is non-empty, files whose path is not listed are skipped; they still
// take part in resolution.
func FilesFromDescriptorSet(fds *descriptorpb.FileDescriptorSet, only []string) ([]meta.File, error) {
	files, err := protodesc.FileOptions{AllowUnresolvable: true}.NewFiles(fds)
	if err != nil {
		return nil, fmt.Errorf("build file registry: %w", err)
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	if missing := missingFiles(fds, only); len(missing) > 0 {
		return nil, fmt.Errorf("files not in descriptor set: %s", strings.Join(missing, ", "))
	}

	var out []meta.File
	for _, fdp := range fds.GetFile() {
		if len(wanted) > 0 && !wanted[fdp.GetName()] {
			continue
		}
		fd, err := files.FindFileByPath(fdp.GetName())
		if err != nil {
			return nil, fmt.Errorf("find file %s: %w", fdp.GetName(), err)
		}
		out = append(out, FileFromProto(fd))
	}
	return out, nil
}

func missingFiles(fds *descriptorpb.FileDescriptorSet, names []string) []string {
	present := make(map[string]bool, len(fds.GetFile()))
	for _, f := range fds.GetFile() {
		present[f.GetName()] = true
	}
	var missing []string
	for _, name := range names {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// FileFromProto collects the enums of fd: top-level enums first, then enums
// nested in messages, depth first in declaration order.
func FileFromProto(fd protoreflect.FileDescriptor) meta.File {
	f := meta.File{
		Name:    fd.Path(),
		Package: string(fd.Package()),
	}
	f.Enums = appendEnums(f.Enums, fd.Enums())
	f.Enums = appendNestedEnums(f.Enums, fd.Messages())
	return f
}

func appendEnums(dst []*enumgen.EnumDescriptor, enums protoreflect.EnumDescriptors) []*enumgen.EnumDescriptor {
	for i := 0; i < enums.Len(); i++ {
		dst = append(dst, EnumFromProto(enums.Get(i)))
	}
	return dst
}

func appendNestedEnums(dst []*enumgen.EnumDescriptor, msgs protoreflect.MessageDescriptors) []*enumgen.EnumDescriptor {
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		dst = appendEnums(dst, md.Enums())
		dst = appendNestedEnums(dst, md.Messages())
	}
	return dst
}

// EnumFromProto converts a protobuf enum descriptor, keeping value declaration order.
func EnumFromProto(ed protoreflect.EnumDescriptor) *enumgen.EnumDescriptor {
	values := ed.Values()
	d := &enumgen.EnumDescriptor{
		FullName: string(ed.FullName()),
		Name:     string(ed.Name()),
		Package:  string(ed.ParentFile().Package()),
		Values:   make([]enumgen.EnumValue, 0, values.Len()),
	}
	for i := 0; i < values.Len(); i++ {
		v := values.Get(i)
		d.Values = append(d.Values, enumgen.EnumValue{
			Name:   string(v.Name()),
			Number: int32(v.Number()),
		})
	}
	return d
}
