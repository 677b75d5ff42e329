package cgen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

const sourceTmpl = `/* Generated by protoc-c-enum {{.Version}}.  DO NOT EDIT! */
/* Generated from: {{.Source}} */

/* Do not generate deprecated warnings for self */
#ifndef PROTOBUF_C__NO_DEPRECATED
#define PROTOBUF_C__NO_DEPRECATED
#endif

#include "{{.Header}}"
{{range .Enums}}{{descriptor .}}{{end}}`

type sourceData struct {
	*meta.File
	Version string
	Source  string
	Header  string
}

func renderSource(f *meta.File, header string, opts Options) ([]byte, error) {
	t, err := template.New("pb-c.c").Funcs(tplFuncs(opts)).Parse(sourceTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse source tmpl: %w", err)
	}

	data := sourceData{
		File:    f,
		Version: opts.Version,
		Source:  f.Name,
		Header:  header,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec source tmpl: %w", err)
	}
	return buf.Bytes(), nil
}
