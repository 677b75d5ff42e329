package cgen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/common"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

const headerTmpl = `/* Generated by protoc-c-enum {{.Version}}.  DO NOT EDIT! */
/* Generated from: {{.Source}} */

#ifndef PROTOBUF_C_{{.Guard}}__INCLUDED
#define PROTOBUF_C_{{.Guard}}__INCLUDED

#include <protobuf-c/protobuf-c.h>

PROTOBUF_C__BEGIN_DECLS

/* --- enums --- */
{{range .Enums}}
{{definition .}}{{end}}
/* --- descriptors --- */

{{range .Enums}}{{declaration .}}{{end}}
PROTOBUF_C__END_DECLS


#endif  /* PROTOBUF_C_{{.Guard}}__INCLUDED */
`

type headerData struct {
	*meta.File
	Version string
	Source  string
	Guard   string
}

func renderHeader(f *meta.File, opts Options) ([]byte, error) {
	t, err := template.New("pb-c.h").Funcs(tplFuncs(opts)).Parse(headerTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse header tmpl: %w", err)
	}

	data := headerData{
		File:    f,
		Version: opts.Version,
		Source:  f.Name,
		Guard:   common.FilenameIdentifier(f.Name),
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec header tmpl: %w", err)
	}
	return buf.Bytes(), nil
}
