package parser

import (
	"fmt"
	"io"

	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Record is one game as read from PGN: its tags and the main-line move
// texts. Comments, NAGs and variations are dropped.
type Record struct {
	Tags   map[string]string
	Moves  []string
	Result string
	Line   uint // Line the record starts on
}

// Parser parses PGN input into Records.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	cfg          *config.Config
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r),
		cfg:   cfg,
	}
}

func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*Record, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	rec := &Record{
		Tags: make(map[string]string),
		Line: p.currentToken.Line,
	}
	p.parseOptTagList(rec)

	if err := p.parseMoveList(rec); err != nil {
		return nil, err
	}

	rec.Result = p.parseResult()
	if rec.Result != "" {
		if r := rec.Tags["Result"]; r == "" || r == "?" {
			rec.Tags["Result"] = rec.Result
		}
	}
	return rec, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveNumber, MoveToken, TerminatingResult:
			return
		default:
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tags, skipping comments between them.
func (p *Parser) parseOptTagList(rec *Record) {
	for {
		switch p.currentToken.Type {
		case TagToken:
			tagName := p.currentToken.Text
			p.nextToken()
			if p.currentToken.Type == StringToken {
				rec.Tags[tagName] = p.currentToken.Text
				p.nextToken()
			} else {
				fmt.Fprintf(p.cfg.LogFile, "Missing tag string for %s.\n", tagName)
			}
		case StringToken:
			fmt.Fprintf(p.cfg.LogFile, "Missing tag name for %s.\n", p.currentToken.Text)
			p.nextToken()
		case CommentToken:
			p.nextToken()
		default:
			return
		}
	}
}

// parseMoveList collects main-line moves until a result, the next game's
// tags or the end of input.
func (p *Parser) parseMoveList(rec *Record) error {
	for {
		tok := p.currentToken
		switch tok.Type {
		case MoveNumber, CommentToken, NAGToken:
			p.nextToken()
		case MoveToken:
			rec.Moves = append(rec.Moves, tok.Text)
			p.nextToken()
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
		case RAVEnd, ErrorToken, StringToken:
			return syntaxError(tok, "a move")
		default:
			return nil
		}
	}
}

// skipVariation skips a parenthesised variation, including nested ones.
func (p *Parser) skipVariation() error {
	start := p.currentToken
	depth := 0
	for {
		switch p.currentToken.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
			if depth == 0 {
				p.nextToken()
				return nil
			}
		case EOFToken:
			return syntaxError(start, "')' to close variation")
		}
		p.nextToken()
	}
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type != TerminatingResult {
		return ""
	}
	result := p.currentToken.Text
	p.nextToken()
	return result
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := p.ParseGame()
		if err != nil {
			return records, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, rec)
	}
}

func syntaxError(tok *Token, expected string) error {
	got := tok.Type.String()
	if tok.Text != "" {
		got = fmt.Sprintf("%q", tok.Text)
	}
	return fmt.Errorf("line %d: %w", tok.Line, &errors.ParseError{
		Err:      errors.ErrParseFailure,
		Column:   int(tok.Column),
		Expected: expected,
		Got:      got,
	})
}
