package programfile

import (
	"unicode"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenInt
	tokenIdent
	tokenSymbol
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// twoCharSymbols are matched before single character symbols.
var twoCharSymbols = []string{"<<", ">>", "==", "!=", ">=", "<="}

const oneCharSymbols = "+-*/&|^<>=()"

// lex splits an expression, assignment or comparison into tokens. Identifiers may contain letters, digits, '_', '.'
// and '$' and must not start with a digit.
func lex(s string) ([]token, error) {
	tokens := make([]token, 0)
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenInt, text: string(runes[start:i]), pos: start})
		case isIdentStart(r):
			start := i
			for i < len(runes) && (isIdentStart(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[start:i]), pos: start})
		default:
			matched := false
			if i+1 < len(runes) {
				pair := string(runes[i : i+2])
				for _, sym := range twoCharSymbols {
					if pair == sym {
						tokens = append(tokens, token{kind: tokenSymbol, text: sym, pos: i})
						i += 2
						matched = true
						break
					}
				}
			}
			if matched {
				continue
			}
			if !containsRune(oneCharSymbols, r) {
				return nil, errors.Errorf("unexpected character %q at offset %d in %q", r, i, s)
			}
			tokens = append(tokens, token{kind: tokenSymbol, text: string(r), pos: i})
			i++
		}
	}
	return append(tokens, token{kind: tokenEOF, pos: len(runes)}), nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '.' || r == '$'
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
