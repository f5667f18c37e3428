package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenIdent
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret // ^ or **
	TokenLParen
	TokenRParen
	TokenEOF
)

// Token represents a single lexical token.
type Token struct {
	Type  TokenType
	Value string  // raw text
	Num   float64 // parsed value for TokenNumber
	Pos   int     // byte offset in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "number"
	case TokenIdent:
		return "identifier"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenCaret:
		return "'^'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenEOF:
		return "end of input"
	default:
		return "unknown"
	}
}
