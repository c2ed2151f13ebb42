package grammar

// parser builds rule definitions from the token stream.
type parser struct {
	lex *lexer
	tok token

	// refs remembers every rule reference so Compile can reject
	// references to undefined rules with a useful position.
	refs []refSite
}

type refSite struct {
	name string
	line int
	col  int
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, errAt(p.tok.line, p.tok.col, "expected %s, found %s", kind, p.tok.kind)
	}

	tok := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}

	return tok, nil
}

// parseRule parses one `name = { expr }` or `name = _{ expr }` definition.
func (p *parser) parseRule() (*ruleDef, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokenAssign); err != nil {
		return nil, err
	}

	silent := false

	if p.tok.kind == tokenUnderscore {
		silent = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}

	body, err := p.parseChoice()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}

	return &ruleDef{name: name.text, silent: silent, body: body}, nil
}

func (p *parser) parseChoice() (expression, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}

	alts := []expression{first}

	for p.tok.kind == tokenPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}

		alt, err := p.parseSequence()
		if err != nil {
			return nil, err
		}

		alts = append(alts, alt)
	}

	if len(alts) == 1 {
		return first, nil
	}

	return &choiceExpr{alts: alts}, nil
}

func (p *parser) parseSequence() (expression, error) {
	first, err := p.parsePrefixed()
	if err != nil {
		return nil, err
	}

	items := []expression{first}

	for p.tok.kind == tokenTilde {
		if err := p.advance(); err != nil {
			return nil, err
		}

		item, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if len(items) == 1 {
		return first, nil
	}

	return &seqExpr{items: items}, nil
}

func (p *parser) parsePrefixed() (expression, error) {
	switch p.tok.kind {
	case tokenBang, tokenAmp:
		negative := p.tok.kind == tokenBang

		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}

		return &predExpr{inner: inner, negative: negative}, nil
	default:
		return p.parsePostfixed()
	}
}

func (p *parser) parsePostfixed() (expression, error) {
	inner, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.kind {
		case tokenQuestion:
			inner = &repeatExpr{inner: inner, min: 0, max: 1}
		case tokenStar:
			inner = &repeatExpr{inner: inner, min: 0, max: -1}
		case tokenPlus:
			inner = &repeatExpr{inner: inner, min: 1, max: -1}
		default:
			return inner, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parsePrimary() (expression, error) {
	switch p.tok.kind {
	case tokenIdent:
		name := p.tok

		if err := p.advance(); err != nil {
			return nil, err
		}

		if name.text == "ANY" {
			return &anyExpr{}, nil
		}

		p.refs = append(p.refs, refSite{name: name.text, line: name.line, col: name.col})

		return &refExpr{name: name.text}, nil
	case tokenString:
		text := p.tok.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &literalExpr{text: text}, nil
	case tokenChar:
		return p.parseCharOrRange()
	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseChoice()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}

		return inner, nil
	}

	return nil, errAt(p.tok.line, p.tok.col, "expected expression, found %s", p.tok.kind)
}

// parseCharOrRange handles both 'a'..'z' ranges and bare 'a' literals.
func (p *parser) parseCharOrRange() (expression, error) {
	lo := p.tok

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokenRange {
		return &literalExpr{text: lo.text}, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	hi, err := p.expect(tokenChar)
	if err != nil {
		return nil, err
	}

	loRune := []rune(lo.text)[0]
	hiRune := []rune(hi.text)[0]

	if hiRune < loRune {
		return nil, errAt(lo.line, lo.col, "empty character range %q..%q", lo.text, hi.text)
	}

	return &rangeExpr{lo: loRune, hi: hiRune}, nil
}
