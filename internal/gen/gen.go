// Package gen turns a classified signature into a self-contained C program:
// type declarations for every aggregate, a prototype for the callee, and a
// call site with deterministic example literals. Feeding the program to a
// real compiler lets the model's answers be checked against hardware.
package gen

import (
	"fmt"
	"strings"

	"rvcc/internal/cctype"
	"rvcc/internal/sigparse"
	"rvcc/internal/target"
)

// Program renders the C source for one signature on one target. The
// signature is classified first, so anything the convention rejects (bare
// arrays, misplaced varargs) fails here too.
func Program(t target.Target, sig sigparse.Signature) (string, error) {
	m, err := t.Machine()
	if err != nil {
		return "", err
	}
	if _, err := m.Call(sig.Args, sig.Ret); err != nil {
		return "", err
	}

	g := &generator{names: make(map[*cctype.Type]string)}

	args, variadic := splitVarArgs(sig.Args)

	params := make([]string, 0, len(args)+1)
	values := make([]string, 0, len(args)+len(variadic))
	decls := make([]string, 0, len(args)+len(variadic))
	for i, ty := range args {
		name := fmt.Sprintf("a%d", i)
		params = append(params, g.declare(ty, name))
		decls = append(decls, fmt.Sprintf("  %s = %s;", g.declare(ty, name), g.literal(ty)))
		values = append(values, name)
	}
	if variadic != nil {
		params = append(params, "...")
		for i, ty := range variadic {
			name := fmt.Sprintf("v%d", i)
			decls = append(decls, fmt.Sprintf("  %s = %s;", g.declare(ty, name), g.literal(ty)))
			values = append(values, name)
		}
	}
	if len(params) == 0 {
		params = append(params, "void")
	}

	retSpec := "void"
	if sig.Ret != nil {
		retSpec = g.typeSpec(sig.Ret)
	}

	var b strings.Builder
	b.WriteString("#include <stdint.h>\n\n")
	for _, def := range g.defs {
		b.WriteString(def)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "extern %s callee(%s);\n\n", retSpec, strings.Join(params, ", "))
	b.WriteString("int main(void) {\n")
	for _, d := range decls {
		b.WriteString(d)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  (void)callee(%s);\n", strings.Join(values, ", "))
	b.WriteString("  return 0;\n}\n")
	return b.String(), nil
}

func splitVarArgs(args []*cctype.Type) (fixed, variadic []*cctype.Type) {
	if n := len(args); n > 0 && args[n-1].Kind == cctype.KindVarArgs {
		return args[:n-1], args[n-1].Args
	}
	return args, nil
}

type generator struct {
	defs  []string
	names map[*cctype.Type]string
	seq   int
}

// declare renders "type name" with any array suffix in C member position.
func (g *generator) declare(ty *cctype.Type, name string) string {
	suffix := ""
	for ty.Kind == cctype.KindArray {
		suffix += fmt.Sprintf("[%d]", ty.Count)
		ty = ty.Elem
	}
	return fmt.Sprintf("%s %s%s", g.typeSpec(ty), name, suffix)
}

func (g *generator) typeSpec(ty *cctype.Type) string {
	switch ty.Kind {
	case cctype.KindInt:
		switch {
		case ty.Size == 128 && ty.Signed:
			return "__int128"
		case ty.Size == 128:
			return "unsigned __int128"
		case ty.Signed:
			return fmt.Sprintf("int%d_t", ty.Size)
		default:
			return fmt.Sprintf("uint%d_t", ty.Size)
		}
	case cctype.KindFloat:
		switch ty.Size {
		case 32:
			return "float"
		case 64:
			return "double"
		default:
			return "long double"
		}
	case cctype.KindPointer:
		return "void *"
	case cctype.KindStruct, cctype.KindUnion:
		return g.aggregate(ty)
	default:
		// Padding and slices never appear in caller-written signatures.
		return fmt.Sprintf("/* %s */", ty)
	}
}

// aggregate emits (once) and names a typedef for a struct or union.
func (g *generator) aggregate(ty *cctype.Type) string {
	if name, ok := g.names[ty]; ok {
		return name
	}
	keyword := "struct"
	if ty.Kind == cctype.KindUnion {
		keyword = "union"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "typedef %s {\n", keyword)
	field := 0
	for _, mem := range ty.Members {
		if mem.Kind == cctype.KindPadding {
			continue
		}
		fmt.Fprintf(&b, "  %s;\n", g.declare(mem, fmt.Sprintf("f%d", field)))
		field++
	}
	name := fmt.Sprintf("agg%d_t", len(g.names))
	fmt.Fprintf(&b, "} %s;\n", name)
	g.names[ty] = name
	g.defs = append(g.defs, b.String())
	return name
}

// literal builds a deterministic example value: small ints count up from 1,
// floats get a .5 fraction, aggregates brace-init recursively (unions through
// their first member).
func (g *generator) literal(ty *cctype.Type) string {
	switch ty.Kind {
	case cctype.KindInt:
		return fmt.Sprintf("%d", g.nextInt())
	case cctype.KindFloat:
		v := fmt.Sprintf("%d.5", g.nextInt())
		if ty.Size == 32 {
			return v + "f"
		}
		if ty.Size == 128 {
			return v + "L"
		}
		return v
	case cctype.KindPointer:
		return "(void *)0"
	case cctype.KindArray:
		elems := make([]string, 0, ty.Count)
		for i := 0; i < ty.Count; i++ {
			elems = append(elems, g.literal(ty.Elem))
		}
		return "{ " + strings.Join(elems, ", ") + " }"
	case cctype.KindStruct:
		fields := make([]string, 0, len(ty.Members))
		for _, mem := range ty.Members {
			if mem.Kind == cctype.KindPadding {
				continue
			}
			fields = append(fields, g.literal(mem))
		}
		if len(fields) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	case cctype.KindUnion:
		return "{ " + g.literal(ty.Members[0]) + " }"
	default:
		return "0"
	}
}

func (g *generator) nextInt() int {
	g.seq++
	return g.seq
}
