package dub

import (
	"fmt"
	"strconv"
)

type Node interface {
	isNode()
}

func (Identifier) isNode() {}
func (Int) isNode()        {}
func (Float) isNode()      {}
func (String) isNode()     {}
func (KeyExpr) isNode()    {}

type Command struct {
	Name Identifier
	Args []Node
}

type Identifier string
type Int int
type Float float64
type String string

// KeyExpr selects keys by 1-based number, range, name or '*' for all, e.g. '1,3:5,G.
type KeyExpr struct {
	matchers []matcher
	names    []string
}

func Parse(input string) (Command, error) {
	tokens, err := lex(input)
	if err != nil {
		return Command{}, err
	}
	p := parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	pos    int
	tokens []token
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) peek() token {
	t := p.next()
	p.pos--
	return t
}

func (p *parser) parse() (Command, error) {
	var cmd Command
	token := p.next()
	if token.typ != typeIdentifier {
		return cmd, unexpected(token)
	}
	cmd.Name = Identifier(token.text)
	for token := p.next(); token.typ != typeEOF; token = p.next() {
		var arg Node
		switch token.typ {
		case typeIdentifier:
			arg = Identifier(token.text)
		case typeString:
			arg = String(token.text[1 : len(token.text)-1])
		case typeFloat:
			f, err := strconv.ParseFloat(token.text, 64)
			if err != nil {
				return cmd, err
			}
			arg = Float(f)
		case typeInt:
			n, err := strconv.Atoi(token.text)
			if err != nil {
				return cmd, err
			}
			arg = Int(n)
		case typeQuote:
			expr, err := p.keyExpr()
			if err != nil {
				return cmd, err
			}
			arg = expr
		default:
			return cmd, unexpected(token)
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

// keyExpr parses a comma separated list of key selectors following a quote.
func (p *parser) keyExpr() (KeyExpr, error) {
	var expr KeyExpr
	for {
		token := p.next()
		switch token.typ {
		case typeInt:
			start, err := strconv.Atoi(token.text)
			if err != nil {
				return expr, err
			}
			if p.peek().typ != typeColon {
				expr.matchers = append(expr.matchers, listMatch{start})
				break
			}
			p.next()
			t := p.next()
			if t.typ != typeInt {
				return expr, unexpected(t)
			}
			end, err := strconv.Atoi(t.text)
			if err != nil {
				return expr, err
			}
			expr.matchers = append(expr.matchers, rangeMatch{start: start, end: end})
		case typeAsterisk:
			expr.matchers = append(expr.matchers, matchAll)
		case typeIdentifier:
			expr.names = append(expr.names, token.text)
		default:
			return expr, unexpected(token)
		}
		if p.peek().typ != typeComma {
			return expr, nil
		}
		p.next()
	}
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of input at position %d", t.pos)
	}
	return fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}
