package saylang

type Op uint8

const (
	OpInvalid Op = iota
	OpForward
	OpBackward
	OpIncrement
	OpDecrement
	OpRead
	OpWrite
	OpLoopStart
	OpLoopEnd
)

func (o Op) String() string {
	switch o {
	case OpForward:
		return "VPS CMS"
	case OpBackward:
		return "CMS VPS"
	case OpIncrement:
		return "VPS VPS"
	case OpDecrement:
		return "VPN VPN"
	case OpRead:
		return "VPS VPN"
	case OpWrite:
		return "VPN VPS"
	case OpLoopStart:
		return "VPN CMS"
	case OpLoopEnd:
		return "CMS VPN"
	}
	return "invalid"
}

// Describe returns the text shown in traces.
func (o Op) Describe() string {
	switch o {
	case OpForward:
		return "move pointer forward"
	case OpBackward:
		return "move pointer backward"
	case OpIncrement:
		return "increment pointer cell"
	case OpDecrement:
		return "decrement pointer cell"
	case OpRead:
		return "now reading input"
	case OpWrite:
		return "now writing"
	case OpLoopStart:
		return "evaluating start loop"
	case OpLoopEnd:
		return "evaluating end loop"
	}
	return "invalid instruction"
}

func pairOp(a, b TokenKind) Op {
	switch [2]TokenKind{a, b} {
	case [2]TokenKind{TokenVPS, TokenCMS}:
		return OpForward
	case [2]TokenKind{TokenCMS, TokenVPS}:
		return OpBackward
	case [2]TokenKind{TokenVPS, TokenVPS}:
		return OpIncrement
	case [2]TokenKind{TokenVPN, TokenVPN}:
		return OpDecrement
	case [2]TokenKind{TokenVPS, TokenVPN}:
		return OpRead
	case [2]TokenKind{TokenVPN, TokenVPS}:
		return OpWrite
	case [2]TokenKind{TokenVPN, TokenCMS}:
		return OpLoopStart
	case [2]TokenKind{TokenCMS, TokenVPN}:
		return OpLoopEnd
	}
	return OpInvalid
}
