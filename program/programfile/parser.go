package programfile

import (
	"fmt"
	"strconv"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/pkg/errors"
)

// parser is a recursive descent parser over the textual instruction forms:
//
//	expr    := operand [op operand]
//	operand := int | '-' int | ident | '(' expr ')'
//
// Chained operators must be parenthesized, so no precedence rules apply.
type parser struct {
	source string
	tokens []token
	pos    int
}

func newParser(source string) (*parser, error) {
	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}
	return &parser{source: source, tokens: tokens}, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return errors.Errorf("%q offset %d: %s", p.source, t.pos, fmt.Sprintf(format, args...))
}

func (p *parser) expectEOF() error {
	if t := p.peek(); t.kind != tokenEOF {
		return p.errorf(t, "unexpected %q", t.text)
	}
	return nil
}

func (p *parser) parseExpr() (program.Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	if t.kind != tokenSymbol {
		return left, nil
	}
	op, err := program.ParseOp(t.text)
	if err != nil {
		// Not an operator, let the caller decide what follows
		return left, nil
	}
	p.next()

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind == tokenSymbol {
		if _, err := program.ParseOp(t.text); err == nil {
			return nil, p.errorf(t, "chained operator %q must be parenthesized", t.text)
		}
	}
	return program.BinOp{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseOperand() (program.Expr, error) {
	t := p.next()
	switch {
	case t.kind == tokenInt:
		return parseConst(p, t, false)
	case t.kind == tokenSymbol && t.text == "-":
		n := p.next()
		if n.kind != tokenInt {
			return nil, p.errorf(n, "expected an integer after '-'")
		}
		return parseConst(p, n, true)
	case t.kind == tokenIdent:
		return program.Var{Name: t.text}, nil
	case t.kind == tokenSymbol && t.text == "(":
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokenSymbol || c.text != ")" {
			return nil, p.errorf(c, "expected ')'")
		}
		return e, nil
	case t.kind == tokenEOF:
		return nil, p.errorf(t, "unexpected end of input")
	default:
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
}

func parseConst(p *parser, t token, negative bool) (program.Expr, error) {
	text := t.text
	if negative {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf(t, "integer %s out of range", text)
	}
	return program.Const{Value: v}, nil
}

// ParseExpr parses an expression such as "x", "-3", "x + 1" or "(a * b) - c".
func ParseExpr(s string) (program.Expr, error) {
	p, err := newParser(s)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return e, p.expectEOF()
}

// ParseAssign parses an assignment such as "y = x + 1".
func ParseAssign(s string) (program.Assign, error) {
	p, err := newParser(s)
	if err != nil {
		return program.Assign{}, err
	}
	target := p.next()
	if target.kind != tokenIdent {
		return program.Assign{}, p.errorf(target, "expected an assignment target")
	}
	if eq := p.next(); eq.kind != tokenSymbol || eq.text != "=" {
		return program.Assign{}, p.errorf(eq, "expected '='")
	}
	value, err := p.parseExpr()
	if err != nil {
		return program.Assign{}, err
	}
	if err := p.expectEOF(); err != nil {
		return program.Assign{}, err
	}
	return program.Assign{Target: target.text, Value: value}, nil
}

// ParseCompare parses a comparison such as "x > 5" or "(a + 1) != b". Enclosing parentheses are accepted, so the
// output of program.Compare.String parses back to the same comparison.
func ParseCompare(s string) (program.Compare, error) {
	p, err := newParser(s)
	if err != nil {
		return program.Compare{}, err
	}

	// Strip one pair of enclosing parentheses if they wrap the whole comparison
	if len(p.tokens) >= 3 && p.tokens[0].text == "(" && p.tokens[len(p.tokens)-2].text == ")" && wrapsAll(p.tokens) {
		p.tokens = append(p.tokens[1:len(p.tokens)-2:len(p.tokens)-2], p.tokens[len(p.tokens)-1])
	}

	left, err := p.parseExpr()
	if err != nil {
		return program.Compare{}, err
	}
	t := p.next()
	if t.kind != tokenSymbol {
		return program.Compare{}, p.errorf(t, "expected a predicate")
	}
	predicate, err := program.ParsePredicate(t.text)
	if err != nil {
		return program.Compare{}, p.errorf(t, "expected a predicate, got %q", t.text)
	}
	right, err := p.parseExpr()
	if err != nil {
		return program.Compare{}, err
	}
	if err := p.expectEOF(); err != nil {
		return program.Compare{}, err
	}
	return program.Compare{Predicate: predicate, Left: left, Right: right}, nil
}

// wrapsAll reports whether the opening parenthesis at index 0 is closed by the last token before EOF.
func wrapsAll(tokens []token) bool {
	depth := 0
	last := len(tokens) - 2
	for i := 0; i <= last; i++ {
		switch tokens[i].text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 && i != last {
				return false
			}
		}
	}
	return depth == 0
}
