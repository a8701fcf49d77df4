// Package highlight styles the inline `code spans` that appear in
// note text. Span contents run through a chroma lexer so snippets
// keep their token colors.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

type Token struct {
	Text  string
	Style tcell.Style
	Code  bool
}

type Highlighter struct {
	cache map[string][]Token
}

func New() *Highlighter {
	return &Highlighter{cache: make(map[string][]Token)}
}

// Inline splits node text into plain and code tokens. Backticks pair
// up left to right; an unmatched opening backtick stays plain text.
func (h *Highlighter) Inline(text string) []Token {
	if !strings.Contains(text, "`") {
		return []Token{{Text: text}}
	}
	if cached, ok := h.cache[text]; ok {
		return cached
	}

	var tokens []Token
	rest := text
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open+1:], '`')
		if end < 0 {
			break
		}
		if open > 0 {
			tokens = append(tokens, Token{Text: rest[:open]})
		}
		code := rest[open+1 : open+1+end]
		tokens = append(tokens, lexCode(code)...)
		rest = rest[open+end+2:]
	}
	if rest != "" {
		tokens = append(tokens, Token{Text: rest})
	}

	h.cache[text] = tokens
	return tokens
}

// InvalidateCache drops everything; called on theme changes.
func (h *Highlighter) InvalidateCache() {
	h.cache = make(map[string][]Token)
}

func lexCode(code string) []Token {
	if code == "" {
		return nil
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Token{{Text: code, Code: true}}
	}
	var out []Token
	for _, tok := range iter.Tokens() {
		out = append(out, Token{Text: tok.Value, Style: tokenStyle(tok.Type), Code: true})
	}
	return out
}

func tokenStyle(t chroma.TokenType) tcell.Style {
	base := tcell.StyleDefault

	switch {
	case t == chroma.Keyword || t == chroma.KeywordConstant || t == chroma.KeywordDeclaration ||
		t == chroma.KeywordNamespace || t == chroma.KeywordReserved || t == chroma.KeywordType:
		return base.Foreground(tcell.ColorBlue).Bold(true)

	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return base.Foreground(tcell.ColorBlue)

	case t == chroma.LiteralString || t == chroma.LiteralStringAffix || t == chroma.LiteralStringBacktick ||
		t == chroma.LiteralStringChar || t == chroma.LiteralStringDouble || t == chroma.LiteralStringSingle ||
		t == chroma.LiteralStringHeredoc || t == chroma.LiteralStringInterpol ||
		t == chroma.LiteralStringOther || t == chroma.LiteralStringRegex:
		return base.Foreground(tcell.ColorGreen)

	case t == chroma.Comment || t == chroma.CommentMultiline || t == chroma.CommentSingle ||
		t == chroma.CommentSpecial || t == chroma.CommentPreproc || t == chroma.CommentPreprocFile:
		return base.Foreground(tcell.ColorGray).Italic(true)

	case t == chroma.LiteralNumber || t == chroma.LiteralNumberBin || t == chroma.LiteralNumberFloat ||
		t == chroma.LiteralNumberHex || t == chroma.LiteralNumberInteger || t == chroma.LiteralNumberIntegerLong ||
		t == chroma.LiteralNumberOct:
		return base.Foreground(tcell.ColorDarkCyan)

	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return base.Foreground(tcell.ColorYellow)

	case t == chroma.NameClass || t == chroma.NameException || t == chroma.NameDecorator:
		return base.Foreground(tcell.ColorFuchsia)

	default:
		return base
	}
}
