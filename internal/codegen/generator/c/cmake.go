package cgen

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

var cmakeTmpl = template.Must(template.New("cmake").Parse(`# Generated by protoc-c-enum {{.Version}}.  DO NOT EDIT!
cmake_minimum_required(VERSION 3.10)

find_package(PkgConfig REQUIRED)
pkg_check_modules(PROTOBUF_C REQUIRED libprotobuf-c)

add_library({{.Target}} STATIC
{{range .Sources}}    {{.}}
{{end}})

target_include_directories({{.Target}} PUBLIC
    ${CMAKE_CURRENT_SOURCE_DIR}
    ${PROTOBUF_C_INCLUDE_DIRS}
)
target_link_libraries({{.Target}} PUBLIC ${PROTOBUF_C_LIBRARIES})
`))

// GenerateCMake renders a CMakeLists.txt that compiles the given .pb-c.c sources.
func GenerateCMake(sources []string, opts Options) (Output, error) {
	sorted := append([]string(nil), sources...)
	sort.Strings(sorted)

	data := struct {
		Version string
		Target  string
		Sources []string
	}{
		Version: opts.Version,
		Target:  opts.CMakeTarget,
		Sources: sorted,
	}

	var buf bytes.Buffer
	if err := cmakeTmpl.Execute(&buf, data); err != nil {
		return Output{}, fmt.Errorf("execute CMake template: %w", err)
	}
	return Output{Path: "CMakeLists.txt", Content: buf.Bytes()}, nil
}
