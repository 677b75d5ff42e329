// Package enumgen renders protobuf-c enum typedefs and enum descriptor tables.
package enumgen

import "strings"

// EnumValue is one symbolic name / number pair. Its declaration index is its
// position in EnumDescriptor.Values.
type EnumValue struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Number int32  `json:"number" yaml:"number" toml:"number"`
}

// EnumDescriptor describes one enum type. Values keep declaration order.
type EnumDescriptor struct {
	FullName string      // dotted name, e.g. "pkg.Type"
	Name     string      // last segment of FullName
	Package  string      // owning proto package, may be empty
	Values   []EnumValue // declaration order
}

// NewEnumDescriptor builds a descriptor, deriving the short name from fullName.
// values is copied.
func NewEnumDescriptor(fullName, pkg string, values ...EnumValue) *EnumDescriptor {
	return &EnumDescriptor{
		FullName: fullName,
		Name:     ShortName(fullName),
		Package:  pkg,
		Values:   append([]EnumValue(nil), values...),
	}
}

// ShortName returns the last dotted segment of fullName.
func ShortName(fullName string) string {
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
