// Package grammar compiles pest-style PEG grammars and matches input
// against them, reporting every rule entry and exit to a listener.
//
// The supported notation covers the debugger playground subset: `name =
// { expr }` definitions with a `_{ ... }` silent form, sequence `~`,
// ordered choice `|`, repetitions `? * +`, lookahead `! &`, string
// literals, character ranges `'a'..'z'`, the builtin ANY and `//` line
// comments.
package grammar

// ruleDef is one compiled rule.
type ruleDef struct {
	name   string
	silent bool
	body   expression
}

// Rule describes a compiled rule to callers outside the engine.
type Rule struct {
	Name   string
	Silent bool
}

// Grammar is a compiled, immutable rule table.
type Grammar struct {
	defs  map[string]*ruleDef
	order []string
}

// Compile parses a grammar text into a rule table. It rejects duplicate
// definitions and references to undefined rules.
func Compile(src string) (*Grammar, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	g := &Grammar{defs: make(map[string]*ruleDef)}

	for p.tok.kind != tokenEOF {
		line, col := p.tok.line, p.tok.col

		def, err := p.parseRule()
		if err != nil {
			return nil, err
		}

		if _, exists := g.defs[def.name]; exists {
			return nil, errAt(line, col, "rule %q defined twice", def.name)
		}

		g.defs[def.name] = def
		g.order = append(g.order, def.name)
	}

	if len(g.order) == 0 {
		return nil, errAt(1, 1, "grammar defines no rules")
	}

	for _, ref := range p.refs {
		if _, ok := g.defs[ref.name]; !ok {
			return nil, errAt(ref.line, ref.col, "reference to undefined rule %q", ref.name)
		}
	}

	return g, nil
}

// Rules returns the rules in definition order.
func (g *Grammar) Rules() []Rule {
	rules := make([]Rule, 0, len(g.order))

	for _, name := range g.order {
		def := g.defs[name]
		rules = append(rules, Rule{Name: def.name, Silent: def.silent})
	}

	return rules
}

// Has reports whether the grammar defines the named rule.
func (g *Grammar) Has(name string) bool {
	_, ok := g.defs[name]
	return ok
}

// First returns the name of the first defined rule, the default entry
// point when the caller does not pick one.
func (g *Grammar) First() string {
	return g.order[0]
}
