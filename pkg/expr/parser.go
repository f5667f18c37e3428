package expr

import (
	"fmt"
	"math"
)

// DefaultVariable is the free variable assumed when none is given.
const DefaultVariable = "x"

var namedConstants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Parser builds an expression tree from tokens.
type Parser struct {
	input    string
	tokens   []Token
	pos      int
	variable string
}

// Parse parses text into an expression over the single free variable.
// Besides the variable, the only identifiers accepted are function names
// and the constants pi and e; the variable shadows a constant of the same
// name. Precedence, from loosest: + -, * /, ^ (right associative), unary
// minus, calls and parentheses.
func Parse(text, variable string) (ExprNode, error) {
	if variable == "" {
		variable = DefaultVariable
	}
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{input: text, tokens: tokens, variable: variable}
	if p.current().Type == TokenEOF {
		return nil, p.errorf(0, "empty expression")
	}
	node, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		if tok.Type == TokenRParen {
			return nil, p.errorf(tok.Pos, "unbalanced ')'")
		}
		return nil, p.errorf(tok.Pos, "unexpected %s %q after expression", tok.Type, tok.Value)
	}
	return node, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(text, variable string) ExprNode {
	node, err := Parse(text, variable)
	if err != nil {
		panic(err)
	}
	return node
}

func (p *Parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes a token of the expected type or returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, p.errorf(tok.Pos, "expected %s, got %s", tt, tok.Type)
	}
	p.advance()
	return tok, nil
}

func (p *Parser) parseSum() (ExprNode, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := OpAdd
		if p.advance().Type == TokenMinus {
			op = OpSub
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseProduct() (ExprNode, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenStar || p.current().Type == TokenSlash {
		op := OpMul
		if p.advance().Type == TokenSlash {
			op = OpDiv
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parsePower is right associative: 2^3^2 = 2^(3^2).
func (p *Parser) parsePower() (ExprNode, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenCaret {
		return base, nil
	}
	p.advance()
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *Parser) parseUnary() (ExprNode, error) {
	switch p.current().Type {
	case TokenMinus:
		p.advance()
		if tok := p.current(); tok.Type == TokenNumber {
			p.advance()
			return &ConstNode{Val: -tok.Num}, nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNeg, Child: operand}, nil
	case TokenPlus:
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ExprNode, error) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		return &ConstNode{Val: tok.Num}, nil

	case TokenIdent:
		p.advance()
		if tok.Value == p.variable {
			return &VarNode{Name: tok.Value}, nil
		}
		if fn, ok := LookupFunc(tok.Value); ok {
			if p.current().Type != TokenLParen {
				return nil, p.errorf(p.current().Pos, "expected '(' after function %s", tok.Value)
			}
			p.advance()
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, p.errorf(p.current().Pos, "unbalanced '(' in call to %s", tok.Value)
			}
			return &CallNode{Fn: fn, Arg: arg}, nil
		}
		if v, ok := namedConstants[tok.Value]; ok {
			return &ConstNode{Val: v}, nil
		}
		return nil, p.errorf(tok.Pos, "unknown identifier %q", tok.Value)

	case TokenLParen:
		p.advance()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRParen {
			return nil, p.errorf(p.current().Pos, "unbalanced '(': expected ')', got %s", p.current().Type)
		}
		p.advance()
		return inner, nil

	case TokenEOF:
		return nil, p.errorf(tok.Pos, "unexpected end of input")

	default:
		return nil, p.errorf(tok.Pos, "unexpected %s", tok.Type)
	}
}
