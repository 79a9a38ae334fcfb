package saylang

import "fmt"

type Instruction struct {
	Op  Op
	Pos Pos
}

type Program struct {
	Source       *Source
	Instructions []Instruction
}

func (p *Program) Len() int {
	return len(p.Instructions)
}

// Pair groups tokens two by two. Pairing happens once, at load time.
func Pair(src *Source, tokens []Token) (*Program, error) {
	if len(tokens)%2 != 0 {
		last := tokens[len(tokens)-1]
		return nil, WithPos(
			fmt.Errorf("%w: %d tokens", ErrOddTokenCount, len(tokens)),
			last.Pos,
		)
	}

	program := &Program{
		Source:       src,
		Instructions: make([]Instruction, 0, len(tokens)/2),
	}
	for i := 0; i < len(tokens); i += 2 {
		first, second := tokens[i], tokens[i+1]
		op := pairOp(first.Kind, second.Kind)
		if op == OpInvalid {
			return nil, WithPos(
				fmt.Errorf("%w: %s %s", ErrUnknownPairing, first.Text, second.Text),
				first.Pos,
			)
		}
		program.Instructions = append(program.Instructions, Instruction{
			Op:  op,
			Pos: first.Pos,
		})
	}

	return program, nil
}

func Parse(name string, content string) (*Program, error) {
	src := NewSource(name, content)
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Pair(src, tokens)
}
