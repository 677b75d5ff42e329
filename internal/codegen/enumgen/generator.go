package enumgen

import (
	"strconv"

	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/common"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/printer"
)

// Generator renders the C code for a single enum. It never modifies the descriptor.
type Generator struct {
	desc      *EnumDescriptor
	dllexport string
}

// NewGenerator returns a Generator for desc. dllexport is an optional
// visibility qualifier placed in front of the descriptor declaration.
func NewGenerator(desc *EnumDescriptor, dllexport string) *Generator {
	return &Generator{desc: desc, dllexport: dllexport}
}

// GenerateDefinition prints the typedef enum with members in declaration order.
func (g *Generator) GenerateDefinition(p *printer.Printer) {
	vars := map[string]string{
		"classname": common.TypeIdentifier(g.desc.FullName),
		"prefix":    common.ConstantPrefix(g.desc.FullName),
	}

	p.Print(vars, "typedef enum _$classname$ {\n")
	p.Indent()
	for _, v := range g.desc.Values {
		vars["name"] = common.UpperValueSuffix(v.Name)
		vars["number"] = strconv.FormatInt(int64(v.Number), 10)
		p.Print(vars, "$prefix$$name$ = $number$,\n")
	}
	p.Outdent()
	p.Print(vars, "} $classname$;\n")
}

// GenerateDescriptorDeclarations prints the extern declaration of the enum descriptor.
func (g *Generator) GenerateDescriptorDeclarations(p *printer.Printer) {
	vars := map[string]string{
		"dllexport":   "",
		"lcclassname": common.LowerAccessorName(g.desc.FullName),
	}
	if g.dllexport != "" {
		vars["dllexport"] = g.dllexport + " "
	}

	p.Print(vars, "extern $dllexport$const ProtobufCEnumDescriptor    $lcclassname$__descriptor;\n")
}

// GenerateEnumDescriptor prints the by-number and by-name value tables
// followed by the descriptor that references them.
func (g *Generator) GenerateEnumDescriptor(p *printer.Printer) {
	order := Canonicalize(g.desc)
	vars := map[string]string{
		"fullname":           printer.CEscape(g.desc.FullName),
		"shortname":          printer.CEscape(g.desc.Name),
		"cname":              printer.CEscape(common.TypeIdentifier(g.desc.FullName)),
		"lcclassname":        common.LowerAccessorName(g.desc.FullName),
		"packagename":        printer.CEscape(g.desc.Package),
		"value_count":        strconv.Itoa(len(order.ByName)),
		"unique_value_count": strconv.Itoa(len(order.ByNumber)),
	}

	p.Print(vars, "const ProtobufCEnumValue $lcclassname$_enum_values_by_number[$unique_value_count$] =\n{\n")
	for _, v := range order.ByNumber {
		g.generateValueInitializer(p, v)
	}
	p.Print(vars, "};\n")

	p.Print(vars, "const ProtobufCEnumValue $lcclassname$_enum_values_by_name[$value_count$] =\n{\n")
	for _, v := range order.ByName {
		g.generateValueInitializer(p, v)
	}
	p.Print(vars, "};\n")

	p.Print(vars, `const ProtobufCEnumDescriptor $lcclassname$__descriptor =
{
  "$fullname$",
  "$shortname$",
  "$cname$",
  "$packagename$",
  $unique_value_count$,
  $lcclassname$_enum_values_by_number,
  $value_count$,
  $lcclassname$_enum_values_by_name
};
`)
}

func (g *Generator) generateValueInitializer(p *printer.Printer, v EnumValue) {
	vars := map[string]string{
		"enum_value_name":   printer.CEscape(v.Name),
		"c_enum_value_name": common.ConstantPrefix(g.desc.FullName) + common.UpperValueSuffix(v.Name),
		"value":             strconv.FormatInt(int64(v.Number), 10),
	}
	p.Print(vars, "  { \"$enum_value_name$\", \"$c_enum_value_name$\", $value$ },\n")
}
