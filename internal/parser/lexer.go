package parser

import (
	"bufio"
	"io"
	"strings"
)

// Lexer tokenizes PGN input line by line.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum uint
	eof     bool
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// LineNumber returns the current line number (1-based).
func (l *Lexer) LineNumber() uint {
	return l.lineNum
}

// readLine reads the next line from input. Lines starting with '%' are
// escape lines and read as empty.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if line == "" {
			return false
		}
	}
	l.line = strings.TrimRight(line, "\r\n")
	l.pos = 0
	l.lineNum++
	if strings.HasPrefix(l.line, "%") {
		l.line = ""
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isTagChar(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isWordChar reports whether c can appear in a move or result.
func isWordChar(c byte) bool {
	if isSpace(c) {
		return false
	}
	return !strings.ContainsRune(`[]{}()";$`, rune(c))
}

func isResult(s string) bool {
	switch s {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

// readWhile consumes characters while accept holds and returns them.
func (l *Lexer) readWhile(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.line) && accept(l.line[l.pos]) {
		l.pos++
	}
	return l.line[start:l.pos]
}

// NextToken returns the next token. At end of input it returns an
// EOFToken, repeatedly.
func (l *Lexer) NextToken() *Token {
	for {
		for l.pos < len(l.line) && isSpace(l.line[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.line) {
			break
		}
		if !l.readLine() {
			return &Token{Type: EOFToken, Line: l.lineNum}
		}
	}

	tok := &Token{Line: l.lineNum, Column: uint(l.pos + 1)}
	c := l.line[l.pos]

	switch {
	case c == '[':
		l.pos++
		for l.pos < len(l.line) && isSpace(l.line[l.pos]) {
			l.pos++
		}
		tok.Type = TagToken
		tok.Text = l.readWhile(isTagChar)
		if tok.Text == "" {
			tok.Type = ErrorToken
			tok.Text = "["
		}
	case c == ']':
		l.pos++
		return l.NextToken()
	case c == '"':
		text, ok := l.readString()
		tok.Type = StringToken
		tok.Text = text
		if !ok {
			tok.Type = ErrorToken
		}
	case c == '{':
		tok.Type = CommentToken
		tok.Text = l.readComment()
	case c == ';':
		tok.Type = CommentToken
		tok.Text = strings.TrimSpace(l.line[l.pos+1:])
		l.pos = len(l.line)
	case c == '(':
		l.pos++
		tok.Type = RAVStart
	case c == ')':
		l.pos++
		tok.Type = RAVEnd
	case c == '$':
		l.pos++
		digits := l.readWhile(isDigit)
		tok.Type = NAGToken
		tok.Text = "$" + digits
		if digits == "" {
			tok.Type = ErrorToken
		}
	case c == '!' || c == '?':
		tok.Type = NAGToken
		tok.Text = l.readWhile(func(c byte) bool { return c == '!' || c == '?' })
	case isDigit(c) && l.moveNumberAhead():
		tok.Type = MoveNumber
		tok.Text = l.readWhile(isDigit)
		l.readWhile(func(c byte) bool { return c == '.' })
	default:
		word := l.readWhile(isWordChar)
		if word == "" {
			l.pos++
			tok.Type = ErrorToken
			tok.Text = string(c)
			return tok
		}
		tok.Text = word
		tok.Type = MoveToken
		if isResult(word) {
			tok.Type = TerminatingResult
		}
	}
	return tok
}

// moveNumberAhead reports whether the digits at the current position form
// a move number: followed by a dot, a space or the end of the line.
func (l *Lexer) moveNumberAhead() bool {
	j := l.pos
	for j < len(l.line) && isDigit(l.line[j]) {
		j++
	}
	return j == len(l.line) || l.line[j] == '.' || isSpace(l.line[j])
}

// readString reads a quoted tag value with backslash escapes. It reports
// false if the line ends before the closing quote.
func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder
	l.pos++ // opening quote
	for l.pos < len(l.line) {
		c := l.line[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.line):
			sb.WriteByte(l.line[l.pos+1])
			l.pos += 2
		case c == '"':
			l.pos++
			return sb.String(), true
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return sb.String(), false
}

// readComment reads a brace comment, which may span lines.
func (l *Lexer) readComment() string {
	l.pos++ // opening brace
	var parts []string
	for {
		if i := strings.IndexByte(l.line[l.pos:], '}'); i >= 0 {
			parts = append(parts, l.line[l.pos:l.pos+i])
			l.pos += i + 1
			break
		}
		parts = append(parts, l.line[l.pos:])
		l.pos = len(l.line)
		if !l.readLine() {
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
