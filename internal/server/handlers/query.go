package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/wanderlust/internal/server/storage"
)

// ErrInvalidQuery ошибка разбора параметра q
var ErrInvalidQuery = errors.New("invalid query")

// ParseFileQuery разбирает подмножество языка поиска файлов:
//
//	name = 'trip\'s backup' and trashed = false
//
// Поддерживаются поля name (строка в одинарных кавычках, \' и \\ экранируются)
// и trashed (true|false), условия объединяются через and.
func ParseFileQuery(raw string) (storage.FileQuery, error) {
	var q storage.FileQuery
	p := &queryParser{src: raw}

	p.skipSpaces()
	if p.done() {
		return q, nil
	}

	seen := map[string]bool{}
	for {
		field := p.word()
		if field == "" {
			return q, fmt.Errorf("%w: field name expected at %d", ErrInvalidQuery, p.pos)
		}
		if seen[field] {
			return q, fmt.Errorf("%w: duplicate field %q", ErrInvalidQuery, field)
		}
		seen[field] = true

		p.skipSpaces()
		if !p.consume("=") {
			return q, fmt.Errorf("%w: '=' expected after %s", ErrInvalidQuery, field)
		}
		p.skipSpaces()

		switch field {
		case "name":
			name, err := p.quoted()
			if err != nil {
				return q, err
			}
			q.Name = name
		case "trashed":
			switch v := p.word(); v {
			case "true", "false":
				trashed := v == "true"
				q.Trashed = &trashed
			default:
				return q, fmt.Errorf("%w: trashed must be true or false, got %q", ErrInvalidQuery, v)
			}
		default:
			return q, fmt.Errorf("%w: unsupported field %q", ErrInvalidQuery, field)
		}

		p.skipSpaces()
		if p.done() {
			return q, nil
		}
		if !strings.EqualFold(p.word(), "and") {
			return q, fmt.Errorf("%w: 'and' expected at %d", ErrInvalidQuery, p.pos)
		}
		p.skipSpaces()
	}
}

type queryParser struct {
	src string
	pos int
}

func (p *queryParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *queryParser) skipSpaces() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *queryParser) consume(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// word читает идентификатор из букв, цифр и '_'
func (p *queryParser) word() string {
	start := p.pos
	for !p.done() {
		c := p.src[p.pos]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *queryParser) quoted() (string, error) {
	if !p.consume("'") {
		return "", fmt.Errorf("%w: quoted string expected at %d", ErrInvalidQuery, p.pos)
	}

	var sb strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case '\'':
			return sb.String(), nil
		case '\\':
			if p.done() {
				return "", fmt.Errorf("%w: dangling escape", ErrInvalidQuery)
			}
			sb.WriteByte(p.src[p.pos])
			p.pos++
		default:
			sb.WriteByte(c)
		}
	}
	return "", fmt.Errorf("%w: unterminated string", ErrInvalidQuery)
}
