// Package sigparse parses the textual signature notation accepted by the CLI
// into calling-convention type descriptors.
//
// Grammar, informally:
//
//	signature := [ args ] [ "->" type ]
//	args      := "void" | item { "," item }
//	item      := "..." | type
//	type      := scalar | "ptr" | struct | union | type "[" count "]"
//	scalar    := "i8".."i128" | "u8".."u128" | "f32" | "f64" | "f128"
//	struct    := "{" [ type { "," type } ] "}"
//	union     := "union" "{" type { "," type } "}"
//
// "..." marks every following argument as variadic. Every parse builds fresh
// descriptor instances, so one parsed signature is directly classifiable.
package sigparse

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"rvcc/internal/cctype"
)

// Signature is a parsed argument list plus optional return type. A trailing
// variadic portion is already wrapped in a VarArgs marker.
type Signature struct {
	Args []*cctype.Type
	Ret  *cctype.Type
}

// Parse parses one signature. xlen resolves the width of "ptr".
func Parse(input string, xlen int) (Signature, error) {
	p := &parser{input: input, xlen: xlen}
	sig, err := p.signature()
	if err != nil {
		return Signature{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return Signature{}, p.errf("unexpected %q", rune(p.peek()))
	}
	return sig, nil
}

type parser struct {
	input string
	off   int
	xlen  int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("signature col %d: %s", p.off+1, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.off >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.off]
}

func (p *parser) bump() byte {
	if p.eof() {
		return 0
	}
	b := p.input[p.off]
	p.off++
	return b
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.off++
		default:
			return
		}
	}
}

func (p *parser) eat(b byte) bool {
	p.skipSpace()
	if p.peek() == b {
		p.off++
		return true
	}
	return false
}

func (p *parser) eatWord(word string) bool {
	p.skipSpace()
	if len(p.input)-p.off < len(word) || p.input[p.off:p.off+len(word)] != word {
		return false
	}
	// A word must not run into a longer identifier.
	if end := p.off + len(word); end < len(p.input) && isWordByte(p.input[end]) {
		return false
	}
	p.off += len(word)
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *parser) signature() (Signature, error) {
	var sig Signature
	p.skipSpace()
	if !p.eof() && !p.startsReturn() {
		args, err := p.argList()
		if err != nil {
			return Signature{}, err
		}
		sig.Args = args
	}
	if p.startsReturn() {
		p.off += 2
		ret, err := p.typeExpr()
		if err != nil {
			return Signature{}, err
		}
		sig.Ret = ret
	}
	return sig, nil
}

func (p *parser) startsReturn() bool {
	p.skipSpace()
	return len(p.input)-p.off >= 2 && p.input[p.off] == '-' && p.input[p.off+1] == '>'
}

func (p *parser) argList() ([]*cctype.Type, error) {
	if p.eatWord("void") {
		return nil, nil
	}
	var fixed []*cctype.Type
	var variadic []*cctype.Type
	seenEllipsis := false
	for {
		p.skipSpace()
		if p.eatWord("...") {
			if seenEllipsis {
				return nil, p.errf("duplicate \"...\"")
			}
			seenEllipsis = true
		} else {
			ty, err := p.typeExpr()
			if err != nil {
				return nil, err
			}
			if seenEllipsis {
				variadic = append(variadic, ty)
			} else {
				fixed = append(fixed, ty)
			}
		}
		if !p.eat(',') {
			break
		}
	}
	if seenEllipsis {
		fixed = append(fixed, cctype.VarArgsOf(variadic...))
	}
	return fixed, nil
}

func (p *parser) typeExpr() (*cctype.Type, error) {
	ty, err := p.baseType()
	if err != nil {
		return nil, err
	}
	for p.eat('[') {
		count, err := p.number()
		if err != nil {
			return nil, err
		}
		if !p.eat(']') {
			return nil, p.errf("expected \"]\"")
		}
		ty = cctype.ArrayOf(ty, count)
	}
	return ty, nil
}

func (p *parser) baseType() (*cctype.Type, error) {
	p.skipSpace()
	switch {
	case p.eatWord("ptr"):
		return cctype.Ptr(p.xlen), nil
	case p.eatWord("union"):
		members, err := p.memberList()
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, p.errf("union requires at least one member")
		}
		return cctype.UnionOf(members...), nil
	case p.peek() == '{':
		members, err := p.memberList()
		if err != nil {
			return nil, err
		}
		return cctype.StructOf(members...), nil
	case p.peek() == 'i' || p.peek() == 'u' || p.peek() == 'f':
		return p.scalar()
	default:
		return nil, p.errf("expected a type")
	}
}

func (p *parser) memberList() ([]*cctype.Type, error) {
	if !p.eat('{') {
		return nil, p.errf("expected \"{\"")
	}
	if p.eat('}') {
		return nil, nil
	}
	var members []*cctype.Type
	for {
		ty, err := p.typeExpr()
		if err != nil {
			return nil, err
		}
		members = append(members, ty)
		if p.eat('}') {
			return members, nil
		}
		if !p.eat(',') {
			return nil, p.errf("expected \",\" or \"}\"")
		}
	}
}

func (p *parser) scalar() (*cctype.Type, error) {
	kind := p.bump()
	size, err := p.number()
	if err != nil {
		return nil, err
	}
	valid := map[int]bool{8: true, 16: true, 32: true, 64: true, 128: true}
	switch kind {
	case 'i', 'u':
		if !valid[size] {
			return nil, p.errf("unsupported integer width %d", size)
		}
		if kind == 'u' {
			return cctype.UInt(size), nil
		}
		return cctype.Int(size), nil
	case 'f':
		if size != 32 && size != 64 && size != 128 {
			return nil, p.errf("unsupported float width %d", size)
		}
		return cctype.Float(size), nil
	default:
		return nil, p.errf("expected a scalar type")
	}
}

func (p *parser) number() (int, error) {
	p.skipSpace()
	start := p.off
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.off++
	}
	if start == p.off {
		return 0, p.errf("expected a number")
	}
	u, err := strconv.ParseUint(p.input[start:p.off], 10, 32)
	if err != nil {
		return 0, p.errf("bad number: %v", err)
	}
	n, err := safecast.Conv[int](u)
	if err != nil {
		return 0, p.errf("number overflow: %v", err)
	}
	return n, nil
}
