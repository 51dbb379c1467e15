// Package cssvalue provides a CSS tokenizer (Tokens), the declaration and
// rule splitting the style resolver uses for the `style=` attribute and
// inline `<style>` blocks (plain string splitting, not the tokenizer), and
// a small selector matcher for the latter. Adapted from the teacher repo's
// internal/cssvalue package, which tokenized with the same library but
// had no selector matcher — that piece is new here because the style
// cascade needs to match a `<style>` block's rules against elements.
package cssvalue

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Token is a single CSS token: its type and raw text.
type Token struct {
	Type  css.TokenType
	Value string
}

// Tokens lexes s into a flat token slice.
func Tokens(s string) ([]Token, error) {
	var tokens []Token

	l := css.NewLexer(parse.NewInput(strings.NewReader(s)))
	for {
		typ, value := l.Next()
		if typ == css.ErrorToken {
			if l.Err() == io.EOF {
				break
			}
			return nil, l.Err()
		}
		tokens = append(tokens, Token{Type: typ, Value: string(value)})
	}

	return tokens, nil
}

// Declarations parses a "prop:value; prop2:value2" style attribute body
// into a map of property name to raw value text (later entries
// win on repeat, mirroring CSS cascade-within-one-declaration-block
// semantics).
func Declarations(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		idx := strings.IndexByte(decl, ':')
		if idx < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(decl[:idx]))
		val := strings.TrimSpace(decl[idx+1:])
		if prop != "" {
			out[prop] = val
		}
	}
	return out
}
