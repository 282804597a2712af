// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/jdom/internal/escape"

	"go4.org/mem"
)

// DefaultMaxDepth is the nesting depth limit applied by Parse, and by
// ParseWithOptions when no explicit MaxDepth is set.
const DefaultMaxDepth = 1000

// ErrTooDeep is reported when an input exceeds the nesting depth limit.
// It is wrapped inside the *SyntaxError returned to the caller.
var ErrTooDeep = errors.New("nesting too deep")

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Offset  int    // byte offset of the first offending character
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// ParseOptions are optional settings for a parse. A zero value is ready for
// use and denotes the defaults described on the fields.
type ParseOptions struct {
	// RequireEOF, if true, requires that only whitespace remains in the
	// input after the first value. By default trailing data are ignored.
	RequireEOF bool

	// MaxDepth is the maximum permitted nesting depth of arrays and
	// objects. If zero, DefaultMaxDepth is used.
	MaxDepth int
}

// Parse decodes a node tree from the first JSON value in data. Any input
// after the first value is ignored; use ParseWithOptions to require that
// the input is fully consumed. In case of error, no tree is returned and
// the error has concrete type *SyntaxError.
func Parse(data []byte) (*Node, error) {
	v, _, err := ParseWithOptions(data, ParseOptions{})
	return v, err
}

// ParseWithOptions decodes a node tree from the first JSON value in data
// using the given options. The int result is the offset just past the end
// of the parsed value, where any unconsumed input begins.
func ParseWithOptions(data []byte, opts ParseOptions) (*Node, int, error) {
	p := &parser{data: data, maxDepth: opts.MaxDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	p.skipSpace()
	v, err := p.parseValue(0)
	if err != nil {
		return nil, 0, err
	}
	end := p.pos
	if opts.RequireEOF {
		p.skipSpace()
		if p.pos < len(p.data) {
			return nil, 0, p.failf(p.pos, "unexpected data after value")
		}
		end = p.pos
	}
	return v, end, nil
}

// A parser decodes a single value from an explicit byte range, so truncated
// and embedded buffers are handled uniformly. It keeps no state between
// calls; every failure is reported to the caller with its offset.
type parser struct {
	data     []byte
	pos      int
	maxDepth int
}

func (p *parser) failf(off int, msg string, args ...any) error {
	return &SyntaxError{Offset: off, Message: fmt.Sprintf(msg, args...)}
}

// skipSpace advances past whitespace, taken as all bytes <= 0x20.
func (p *parser) skipSpace() {
	for p.pos < len(p.data) && p.data[p.pos] <= 0x20 {
		p.pos++
	}
}

// parseValue dispatches on the next input byte.
// Precondition: leading whitespace has been consumed.
func (p *parser) parseValue(depth int) (*Node, error) {
	if depth >= p.maxDepth {
		return nil, &SyntaxError{Offset: p.pos, Message: ErrTooDeep.Error(), err: ErrTooDeep}
	}
	if p.pos >= len(p.data) {
		return nil, p.failf(p.pos, "unexpected end of input")
	}
	switch b := p.data[p.pos]; {
	case b == 'n':
		return p.parseLiteral("null", Null)
	case b == 't':
		return p.parseLiteral("true", True)
	case b == 'f':
		return p.parseLiteral("false", False)
	case b == '"':
		text, err := p.parseStringText()
		if err != nil {
			return nil, err
		}
		return NewString(text), nil
	case b == '-' || b >= '0' && b <= '9':
		return p.parseNumber()
	case b == '[':
		return p.parseArray(depth)
	case b == '{':
		return p.parseObject(depth)
	default:
		return nil, p.failf(p.pos, "unexpected %q", b)
	}
}

// parseLiteral matches one of the keyword constants by exact byte sequence.
// No boundary check is applied after the keyword: an input such as "nullx"
// yields null with the trailing byte left for the caller, a documented
// leniency controlled by ParseOptions.RequireEOF.
func (p *parser) parseLiteral(lit string, kind Kind) (*Node, error) {
	if !bytes.HasPrefix(p.data[p.pos:], []byte(lit)) {
		return nil, p.failf(p.pos, "unknown constant")
	}
	p.pos += len(lit)
	return &Node{kind: kind}, nil
}

// parseNumber consumes a number token: an optional leading minus, an
// integer part with no redundant leading zero, an optional fraction, and an
// optional exponent. The value is decoded with strconv.ParseFloat for
// correct rounding; values beyond the double range saturate to infinities.
func (p *parser) parseNumber() (*Node, error) {
	start := p.pos
	i := p.pos
	if p.data[i] == '-' {
		i++
	}
	switch {
	case i >= len(p.data) || !isDigit(p.data[i]):
		return nil, p.failf(i, "want digit")
	case p.data[i] == '0':
		i++
	default:
		for i < len(p.data) && isDigit(p.data[i]) {
			i++
		}
	}
	if i < len(p.data) && p.data[i] == '.' {
		i++
		if i >= len(p.data) || !isDigit(p.data[i]) {
			return nil, p.failf(i, "no digits after decimal point")
		}
		for i < len(p.data) && isDigit(p.data[i]) {
			i++
		}
	}
	if i < len(p.data) && (p.data[i] == 'e' || p.data[i] == 'E') {
		i++
		if i < len(p.data) && (p.data[i] == '+' || p.data[i] == '-') {
			i++
		}
		if i >= len(p.data) || !isDigit(p.data[i]) {
			return nil, p.failf(i, "missing exponent digits")
		}
		for i < len(p.data) && isDigit(p.data[i]) {
			i++
		}
	}
	v, err := strconv.ParseFloat(string(p.data[start:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, p.failf(start, "malformed number")
	}
	p.pos = i
	return NewNumber(v), nil
}

// parseStringText consumes a quoted string and returns its decoded value.
// The scan locates the matching unescaped quote and rejects raw control
// characters; escape decoding and surrogate pairing are handled by the
// escape package, with error offsets mapped back into the input.
func (p *parser) parseStringText() (string, error) {
	start := p.pos // at the opening quote
	i := p.pos + 1
	for {
		if i >= len(p.data) {
			return "", p.failf(start, "unterminated string")
		}
		b := p.data[i]
		if b == '"' {
			break
		} else if b == '\\' {
			i += 2
		} else if b < 0x20 {
			return "", p.failf(i, "unescaped control %q", b)
		} else {
			i++
		}
	}
	dec, off, err := escape.Unquote(mem.B(p.data[start+1 : i]))
	if err != nil {
		return "", p.failf(start+1+off, "%v", err)
	}
	p.pos = i + 1
	return string(dec), nil
}

// parseArray consumes an array. A comma immediately followed by the closing
// bracket is tolerated as a trailing comma.
func (p *parser) parseArray(depth int) (*Node, error) {
	arr := &Node{kind: Array}
	p.pos++ // consume "["
	p.skipSpace()
	if p.pos >= len(p.data) {
		return nil, p.failf(p.pos, "unterminated array")
	}
	if p.data[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	var tail *Node
	for {
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		tail = arr.attach(tail, item)

		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, p.failf(p.pos, "unterminated array")
		}
		switch b := p.data[p.pos]; b {
		case ']':
			p.pos++
			return arr, nil
		case ',':
			p.pos++
			p.skipSpace()
			if p.pos >= len(p.data) {
				return nil, p.failf(p.pos, "unterminated array")
			}
			if p.data[p.pos] == ']' { // trailing comma
				p.pos++
				return arr, nil
			}
		default:
			return nil, p.failf(p.pos, `got %q, want "," or "]"`, b)
		}
	}
}

// parseObject consumes an object. Each member is a quoted key, a colon, and
// a value; the trailing-comma leniency matches parseArray.
func (p *parser) parseObject(depth int) (*Node, error) {
	obj := &Node{kind: Object}
	p.pos++ // consume "{"
	p.skipSpace()
	if p.pos >= len(p.data) {
		return nil, p.failf(p.pos, "unterminated object")
	}
	if p.data[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	var tail *Node
	for {
		if p.data[p.pos] != '"' {
			return nil, p.failf(p.pos, "expected object key")
		}
		key, err := p.parseStringText()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.data) || p.data[p.pos] != ':' {
			return nil, p.failf(p.pos, `missing ":" after object key`)
		}
		p.pos++
		p.skipSpace()
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		item.key, item.hasKey = key, true
		tail = obj.attach(tail, item)

		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, p.failf(p.pos, "unterminated object")
		}
		switch b := p.data[p.pos]; b {
		case '}':
			p.pos++
			return obj, nil
		case ',':
			p.pos++
			p.skipSpace()
			if p.pos >= len(p.data) {
				return nil, p.failf(p.pos, "unterminated object")
			}
			if p.data[p.pos] == '}' { // trailing comma
				p.pos++
				return obj, nil
			}
		default:
			return nil, p.failf(p.pos, `got %q, want "," or "}"`, b)
		}
	}
}

// attach links item after tail in the member chain of n and returns the new
// tail, setting the chain head when tail is nil.
func (n *Node) attach(tail, item *Node) *Node {
	if tail == nil {
		n.firstChild = item
	} else {
		tail.next, item.prev = item, tail
	}
	return item
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// UnmarshalJSON decodes data into *n, satisfying json.Unmarshaler.
// Unlike Parse, the whole input must be consumed.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, _, err := ParseWithOptions(data, ParseOptions{RequireEOF: true})
	if err != nil {
		return err
	}
	*n = *v
	return nil
}
