package grammar

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString // "..." with escapes decoded
	tokenChar   // 'x' with escapes decoded
	tokenAssign // =
	tokenUnderscore
	tokenLBrace
	tokenRBrace
	tokenLParen
	tokenRParen
	tokenTilde
	tokenPipe
	tokenQuestion
	tokenStar
	tokenPlus
	tokenBang
	tokenAmp
	tokenRange // ..
)

// token is one lexical unit of the meta-grammar.
type token struct {
	kind tokenKind
	text string // identifier name or decoded literal payload
	line int
	col  int
}

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of grammar"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string literal"
	case tokenChar:
		return "character literal"
	case tokenAssign:
		return "'='"
	case tokenUnderscore:
		return "'_'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenTilde:
		return "'~'"
	case tokenPipe:
		return "'|'"
	case tokenQuestion:
		return "'?'"
	case tokenStar:
		return "'*'"
	case tokenPlus:
		return "'+'"
	case tokenBang:
		return "'!'"
	case tokenAmp:
		return "'&'"
	case tokenRange:
		return "'..'"
	}

	return "unknown token"
}
