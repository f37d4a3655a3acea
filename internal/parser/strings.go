package parser

import "github.com/zircon-lang/zircon/internal/lexer"

// decodeString expands the escape sequences of a string token and returns
// the decoded bytes, owned by the session arena. The token's offset range
// includes the surrounding quotes; the lexer guarantees they balance and
// that no bare backslash ends the literal.
//
// Recognized escapes: \\ \r \n \t \". Any other escape is a fault reported
// at the backslash. String tokens never span lines, so the column of a byte
// inside the literal is the token column plus the byte's offset into it.
func (p *session) decodeString(tok lexer.Token) []byte {
	raw := p.unit.Code[tok.Start+1 : tok.End-1]

	decoded := make([]byte, 0, len(raw))
	escape := false
	for i, c := range raw {
		if escape {
			switch c {
			case '\\':
				decoded = append(decoded, '\\')
			case 'r':
				decoded = append(decoded, '\r')
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			case '"':
				decoded = append(decoded, '"')
			default:
				escTok := tok
				escTok.Column = tok.Column + i // the backslash before c
				p.errorAt(escTok, "invalid escape sequence: '\\%c'", c)
			}
			escape = false
		} else if c == '\\' {
			escape = true
		} else {
			decoded = append(decoded, c)
		}
	}

	return p.arena.Bytes(decoded)
}

// decodeStringText is decodeString for contexts that consume the decoded
// value as text, like import paths and directive parameters.
func (p *session) decodeStringText(tok lexer.Token) string {
	return string(p.decodeString(tok))
}
