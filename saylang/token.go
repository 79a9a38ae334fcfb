package saylang

type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenVPS
	TokenVPN
	TokenCMS
)

var tokenTexts = map[string]TokenKind{
	"VPS": TokenVPS,
	"VPN": TokenVPN,
	"CMS": TokenCMS,
}

func (k TokenKind) String() string {
	switch k {
	case TokenVPS:
		return "VPS"
	case TokenVPN:
		return "VPN"
	case TokenCMS:
		return "CMS"
	}
	return "EOF"
}
