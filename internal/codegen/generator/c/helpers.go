package cgen

import (
	"text/template"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/enumgen"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/printer"
)

const indentString = "  "

func tplFuncs(opts Options) template.FuncMap {
	render := func(e *enumgen.EnumDescriptor, fn func(*enumgen.Generator, *printer.Printer)) (string, error) {
		p := printer.New(indentString)
		fn(enumgen.NewGenerator(e, opts.DLLExport), p)
		if err := p.Err(); err != nil {
			return "", err
		}
		return p.String(), nil
	}

	return template.FuncMap{
		"definition": func(e *enumgen.EnumDescriptor) (string, error) {
			return render(e, (*enumgen.Generator).GenerateDefinition)
		},
		"declaration": func(e *enumgen.EnumDescriptor) (string, error) {
			return render(e, (*enumgen.Generator).GenerateDescriptorDeclarations)
		},
		"descriptor": func(e *enumgen.EnumDescriptor) (string, error) {
			return render(e, (*enumgen.Generator).GenerateEnumDescriptor)
		},
	}
}
