package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompileError reports a syntax or validation error in a grammar text.
type CompileError struct {
	Line int
	Col  int
	Msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("grammar:%d:%d: %s", e.Line, e.Col, e.Msg)
}

func errAt(line, col int, format string, args ...interface{}) *CompileError {
	return &CompileError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// lexer tokenizes a pest-style grammar text.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}

	return l.src[l.pos], true
}

func (l *lexer) advanceByte() byte {
	ch := l.src[l.pos]
	l.pos++

	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return ch
}

// skipTrivia consumes whitespace and // line comments.
func (l *lexer) skipTrivia() {
	for {
		ch, ok := l.peekByte()
		if !ok {
			return
		}

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advanceByte()
			continue
		}

		if ch == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for {
				ch, ok := l.peekByte()
				if !ok || ch == '\n' {
					break
				}

				l.advanceByte()
			}

			continue
		}

		return
	}
}

//nolint:cyclop // one case per token kind
func (l *lexer) next() (token, error) {
	l.skipTrivia()

	line, col := l.line, l.col

	ch, ok := l.peekByte()
	if !ok {
		return token{kind: tokenEOF, line: line, col: col}, nil
	}

	switch ch {
	case '=':
		l.advanceByte()
		return token{kind: tokenAssign, line: line, col: col}, nil
	case '{':
		l.advanceByte()
		return token{kind: tokenLBrace, line: line, col: col}, nil
	case '}':
		l.advanceByte()
		return token{kind: tokenRBrace, line: line, col: col}, nil
	case '(':
		l.advanceByte()
		return token{kind: tokenLParen, line: line, col: col}, nil
	case ')':
		l.advanceByte()
		return token{kind: tokenRParen, line: line, col: col}, nil
	case '~':
		l.advanceByte()
		return token{kind: tokenTilde, line: line, col: col}, nil
	case '|':
		l.advanceByte()
		return token{kind: tokenPipe, line: line, col: col}, nil
	case '?':
		l.advanceByte()
		return token{kind: tokenQuestion, line: line, col: col}, nil
	case '*':
		l.advanceByte()
		return token{kind: tokenStar, line: line, col: col}, nil
	case '+':
		l.advanceByte()
		return token{kind: tokenPlus, line: line, col: col}, nil
	case '!':
		l.advanceByte()
		return token{kind: tokenBang, line: line, col: col}, nil
	case '&':
		l.advanceByte()
		return token{kind: tokenAmp, line: line, col: col}, nil
	case '.':
		l.advanceByte()

		ch, ok := l.peekByte()
		if !ok || ch != '.' {
			return token{}, errAt(line, col, "expected '..'")
		}

		l.advanceByte()

		return token{kind: tokenRange, line: line, col: col}, nil
	case '"':
		return l.lexString(line, col)
	case '\'':
		return l.lexChar(line, col)
	}

	if ch == '_' && !l.startsIdent() {
		l.advanceByte()
		return token{kind: tokenUnderscore, line: line, col: col}, nil
	}

	if isIdentStart(rune(ch)) {
		return l.lexIdent(line, col), nil
	}

	return token{}, errAt(line, col, "unexpected character %q", string(ch))
}

// startsIdent reports whether the '_' at the current position begins a
// multi-character identifier rather than the silent-rule marker.
func (l *lexer) startsIdent() bool {
	if l.pos+1 >= len(l.src) {
		return false
	}

	next := rune(l.src[l.pos+1])

	return isIdentPart(next)
}

func (l *lexer) lexIdent(line, col int) token {
	start := l.pos

	for {
		ch, ok := l.peekByte()
		if !ok || !isIdentPart(rune(ch)) {
			break
		}

		l.advanceByte()
	}

	return token{kind: tokenIdent, text: l.src[start:l.pos], line: line, col: col}
}

func (l *lexer) lexString(line, col int) (token, error) {
	l.advanceByte() // opening quote

	var b strings.Builder

	for {
		ch, ok := l.peekByte()
		if !ok || ch == '\n' {
			return token{}, errAt(line, col, "unterminated string literal")
		}

		if ch == '"' {
			l.advanceByte()
			return token{kind: tokenString, text: b.String(), line: line, col: col}, nil
		}

		if ch == '\\' {
			decoded, err := l.lexEscape()
			if err != nil {
				return token{}, err
			}

			b.WriteRune(decoded)

			continue
		}

		b.WriteByte(l.advanceByte())
	}
}

func (l *lexer) lexChar(line, col int) (token, error) {
	l.advanceByte() // opening quote

	ch, ok := l.peekByte()
	if !ok || ch == '\n' {
		return token{}, errAt(line, col, "unterminated character literal")
	}

	var payload rune

	if ch == '\\' {
		decoded, err := l.lexEscape()
		if err != nil {
			return token{}, err
		}

		payload = decoded
	} else {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		for i := 0; i < size; i++ {
			l.advanceByte()
		}

		payload = r
	}

	ch, ok = l.peekByte()
	if !ok || ch != '\'' {
		return token{}, errAt(line, col, "unterminated character literal")
	}

	l.advanceByte()

	return token{kind: tokenChar, text: string(payload), line: line, col: col}, nil
}

func (l *lexer) lexEscape() (rune, error) {
	line, col := l.line, l.col
	l.advanceByte() // backslash

	ch, ok := l.peekByte()
	if !ok {
		return 0, errAt(line, col, "unterminated escape sequence")
	}

	l.advanceByte()

	switch ch {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	}

	return 0, errAt(line, col, "unknown escape sequence \\%s", string(ch))
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
