package saylang

import (
	"bufio"
	"io"
	"strings"
)

const tokenLen = 3

// Tokenizer extracts base tokens. Everything else is a separator or a comment.
type Tokenizer struct {
	source  *bufio.Reader
	currPos Pos
}

func NewTokenizer(src *Source) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(strings.NewReader(src.Content)),
		currPos: Pos{
			Source: src,
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) Next() (*Token, error) {
	for {
		startPos := t.currPos

		word, err := t.source.Peek(tokenLen)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(word) == tokenLen {
			if kind, ok := tokenTexts[string(word)]; ok {
				text := string(word)
				if _, err := t.source.Discard(tokenLen); err != nil {
					return nil, err
				}
				t.currPos.Column += tokenLen
				return &Token{
					Kind: kind,
					Text: text,
					Pos:  startPos,
				}, nil
			}
		}

		r, _, err := t.source.ReadRune()
		if err == io.EOF {
			return &Token{Kind: TokenEOF, Pos: startPos}, nil
		}
		if err != nil {
			return nil, err
		}
		if r == '\n' {
			t.currPos.Line++
			t.currPos.Column = 1
		} else {
			t.currPos.Column++
		}
	}
}

func Tokenize(src *Source) ([]Token, error) {
	tokenizer := NewTokenizer(src)
	var tokens []Token
	for {
		token, err := tokenizer.Next()
		if err != nil {
			return nil, err
		}
		if token.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, *token)
	}
}
