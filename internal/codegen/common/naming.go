package common

import (
	"fmt"
	"strings"
)

// fullNameSeparator joins the segments of a dotted protobuf name in generated C identifiers.
const fullNameSeparator = "__"

// TypeIdentifier converts a dotted full name to the C type name used for the enum typedef.
// Example: "foo.bar.traffic_light" -> "Foo__Bar__TrafficLight"
func TypeIdentifier(fullName string) string {
	return joinSegments(fullName, ToCamel)
}

// ConstantPrefix returns the upper-case prefix shared by every value constant of the enum.
// Example: "foo.bar.TrafficLight" -> "FOO__BAR__TRAFFIC_LIGHT__"
func ConstantPrefix(fullName string) string {
	return joinSegments(fullName, CamelToUpper) + fullNameSeparator
}

// LowerAccessorName returns the lower-case base identifier of the generated tables and descriptor.
// Example: "foo.bar.TrafficLight" -> "foo__bar__traffic_light"
func LowerAccessorName(fullName string) string {
	return joinSegments(fullName, CamelToLower)
}

// UpperValueSuffix upper-cases the ASCII letters of a value name for use after
// ConstantPrefix. All other bytes are copied unchanged.
func UpperValueSuffix(valueName string) string {
	buf := []byte(valueName)
	for i, c := range buf {
		buf[i] = toUpper(c)
	}
	return string(buf)
}

func joinSegments(fullName string, conv func(string) string) string {
	var b strings.Builder
	for _, seg := range strings.Split(fullName, ".") {
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(fullNameSeparator)
		}
		b.WriteString(conv(seg))
	}
	return b.String()
}

// ToCamel drops underscores and upper-cases the letter that follows each one, as well as the first letter.
// Example: "traffic_light" -> "TrafficLight"
func ToCamel(s string) string {
	var b strings.Builder
	nextUpper := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
			nextUpper = true
		case nextUpper:
			b.WriteByte(toUpper(c))
			nextUpper = false
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CamelToUpper inserts an underscore at every lower->upper boundary and upper-cases the result.
// Example: "TrafficLight" -> "TRAFFIC_LIGHT", "HTTPCode" -> "HTTPCODE"
func CamelToUpper(s string) string {
	return splitCamel(s, toUpper)
}

// CamelToLower is CamelToUpper with lower-case output.
func CamelToLower(s string) string {
	return splitCamel(s, toLower)
}

func splitCamel(s string, conv func(byte) byte) string {
	var b strings.Builder
	wasUpper := true // no leading underscore
	for i := 0; i < len(s); i++ {
		c := s[i]
		up := isUpper(c)
		if up && !wasUpper {
			b.WriteByte('_')
		}
		b.WriteByte(conv(c))
		wasUpper = up
	}
	return b.String()
}

// FilenameIdentifier turns a file path into a token usable in a C identifier.
// ASCII letters and digits are kept, every other byte becomes "_" followed by its hex code.
// Example: "foo/bar-baz.proto" -> "foo_2fbar_2dbaz_2eproto"
func FilenameIdentifier(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if isUpper(c) || isLower(c) || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02x", c)
	}
	return b.String()
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

func toUpper(b byte) byte {
	if isLower(b) {
		return b - ('a' - 'A')
	}
	return b
}

func toLower(b byte) byte {
	if isUpper(b) {
		return b + ('a' - 'A')
	}
	return b
}
