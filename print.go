// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jdom/internal/escape"

	"go4.org/mem"
)

// ErrSizeOverflow is reported when a required output size exceeds the
// representable range. The output buffer is left intact.
var ErrSizeOverflow = errors.New("buffer size overflow")

// JSON renders n as compact JSON with no whitespace. It returns "" if the
// tree contains an invalid node.
func (n *Node) JSON() string {
	out, err := printExact(n, false)
	if err != nil {
		return ""
	}
	return string(out)
}

// Format renders n as JSON with newlines and one tab per nesting level.
// It returns "" if the tree contains an invalid node.
func (n *Node) Format() string {
	out, err := printExact(n, true)
	if err != nil {
		return ""
	}
	return string(out)
}

// String renders n as compact JSON for debugging.
func (n *Node) String() string {
	out, err := printExact(n, false)
	if err != nil {
		return "<invalid>"
	}
	return string(out)
}

// MarshalJSON renders n as compact JSON, satisfying json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) { return printExact(n, false) }

// Format renders n to w with newlines and tab indentation.
func Format(w io.Writer, n *Node) error {
	out, err := printExact(n, true)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// printExact implements the exact-length strategy: a measuring pass computes
// the precise output size, one buffer of that size is allocated, and the
// writing pass fills it. Used for one-shot top-level prints.
func printExact(n *Node, indent bool) ([]byte, error) {
	size, err := n.measure(indent, 0)
	if err != nil {
		return nil, err
	}
	buf, err := appendValue(make([]byte, 0, size), n, indent, 0)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// AppendJSON renders n at the end of dst and returns the updated slice,
// implementing the growable-buffer strategy: writes go through a buffer
// whose capacity doubles to the next power of two whenever a write would
// not fit, so repeated small writes amortize to linear cost. The capacity
// of dst serves as the caller's size hint. If indent is true the output is
// formatted as by Format, otherwise it is compact.
func AppendJSON(dst []byte, n *Node, indent bool) ([]byte, error) {
	p := &printbuffer{buf: dst[:cap(dst)], off: len(dst)}
	if err := p.value(n, indent, 0); err != nil {
		return dst, err
	}
	return p.buf[:p.off], nil
}

// numText formats v for output. Fifteen significant digits are tried first
// to avoid nonsignificant digits; if re-parsing does not recover the exact
// value, seventeen digits are used. NaN and infinities render as null,
// which is lossy and one-way.
func numText(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "null"
	}
	s := strconv.FormatFloat(v, 'g', 15, 64)
	if t, err := strconv.ParseFloat(s, 64); err != nil || t != v {
		s = strconv.FormatFloat(v, 'g', 17, 64)
	}
	return s
}

// measure computes the exact number of bytes appendValue produces for n.
func (n *Node) measure(indent bool, depth int) (int, error) {
	if n == nil {
		return 0, errors.New("cannot print nil node")
	}
	switch n.kind {
	case Null, True:
		return 4, nil
	case False:
		return 5, nil
	case Number:
		return len(numText(n.num)), nil
	case String:
		return 2 + escape.QuotedLen(mem.S(n.text)), nil
	case Raw:
		return len(n.text), nil
	case Array, Object:
		cnt := n.Len()
		if cnt == 0 {
			return 2, nil
		}
		size := 2 + cnt - 1 // brackets and member separators
		if indent {
			// Newline and indentation after the opening bracket and each
			// separator, and before the closing bracket.
			size += cnt*(depth+2) + depth + 1
		}
		for c := n.firstChild; c != nil; c = c.next {
			if n.kind == Object {
				size += 2 + escape.QuotedLen(mem.S(c.key)) + 1 // "key":
				if indent {
					size++ // tab after the colon
				}
			}
			csize, err := c.measure(indent, depth+1)
			if err != nil {
				return 0, err
			}
			size += csize
		}
		return size, nil
	default:
		return 0, fmt.Errorf("cannot print %v node", n.kind)
	}
}

// appendValue writes n at the end of buf. The caller is expected to have
// reserved capacity with measure, so the appends never reallocate in the
// exact-length path.
func appendValue(buf []byte, n *Node, indent bool, depth int) ([]byte, error) {
	if n == nil {
		return buf, errors.New("cannot print nil node")
	}
	switch n.kind {
	case Null:
		return append(buf, "null"...), nil
	case True:
		return append(buf, "true"...), nil
	case False:
		return append(buf, "false"...), nil
	case Number:
		return append(buf, numText(n.num)...), nil
	case String:
		buf = append(buf, '"')
		buf = escape.Quote(buf, mem.S(n.text))
		return append(buf, '"'), nil
	case Raw:
		return append(buf, n.text...), nil
	case Array, Object:
		lb, rb := byte('['), byte(']')
		if n.kind == Object {
			lb, rb = '{', '}'
		}
		if n.firstChild == nil {
			return append(buf, lb, rb), nil
		}
		buf = append(buf, lb)
		for c := n.firstChild; c != nil; c = c.next {
			if indent {
				buf = append(buf, '\n')
				buf = appendTabs(buf, depth+1)
			}
			if n.kind == Object {
				buf = append(buf, '"')
				buf = escape.Quote(buf, mem.S(c.key))
				buf = append(buf, '"', ':')
				if indent {
					buf = append(buf, '\t')
				}
			}
			var err error
			buf, err = appendValue(buf, c, indent, depth+1)
			if err != nil {
				return buf, err
			}
			if c.next != nil {
				buf = append(buf, ',')
			}
		}
		if indent {
			buf = append(buf, '\n')
			buf = appendTabs(buf, depth)
		}
		return append(buf, rb), nil
	default:
		return buf, fmt.Errorf("cannot print %v node", n.kind)
	}
}

func appendTabs(buf []byte, n int) []byte {
	for range n {
		buf = append(buf, '\t')
	}
	return buf
}

// A printbuffer maintains the buffer, capacity, and offset for the
// growable-buffer strategy.
type printbuffer struct {
	buf []byte // len(buf) is the current capacity
	off int
}

// ensure guarantees at least n more writable bytes are available at the
// write offset, growing the capacity to the next power of two >= the
// requirement when it is insufficient.
func (p *printbuffer) ensure(n int) ([]byte, error) {
	need := p.off + n
	if n < 0 || need < 0 {
		return nil, ErrSizeOverflow
	}
	if need > len(p.buf) {
		newcap := pow2gt(need)
		if newcap < need {
			return nil, ErrSizeOverflow
		}
		grown := make([]byte, newcap)
		copy(grown, p.buf[:p.off])
		p.buf = grown
	}
	return p.buf[p.off : p.off+n], nil
}

func (p *printbuffer) putString(s string) error {
	w, err := p.ensure(len(s))
	if err != nil {
		return err
	}
	copy(w, s)
	p.off += len(s)
	return nil
}

func (p *printbuffer) putByte(bs ...byte) error {
	w, err := p.ensure(len(bs))
	if err != nil {
		return err
	}
	copy(w, bs)
	p.off += len(bs)
	return nil
}

func (p *printbuffer) putQuoted(s string) error {
	w, err := p.ensure(2 + escape.QuotedLen(mem.S(s)))
	if err != nil {
		return err
	}
	w = w[:0]
	w = append(w, '"')
	w = escape.Quote(w, mem.S(s))
	w = append(w, '"')
	p.off += len(w)
	return nil
}

func (p *printbuffer) putTabs(n int) error {
	w, err := p.ensure(n)
	if err != nil {
		return err
	}
	for i := range w {
		w[i] = '\t'
	}
	p.off += n
	return nil
}

// value renders n into p during a single depth-first walk.
func (p *printbuffer) value(n *Node, indent bool, depth int) error {
	if n == nil {
		return errors.New("cannot print nil node")
	}
	switch n.kind {
	case Null:
		return p.putString("null")
	case True:
		return p.putString("true")
	case False:
		return p.putString("false")
	case Number:
		return p.putString(numText(n.num))
	case String:
		return p.putQuoted(n.text)
	case Raw:
		return p.putString(n.text)
	case Array, Object:
		lb, rb := byte('['), byte(']')
		if n.kind == Object {
			lb, rb = '{', '}'
		}
		if n.firstChild == nil {
			return p.putByte(lb, rb)
		}
		if err := p.putByte(lb); err != nil {
			return err
		}
		for c := n.firstChild; c != nil; c = c.next {
			if indent {
				if err := p.putByte('\n'); err != nil {
					return err
				}
				if err := p.putTabs(depth + 1); err != nil {
					return err
				}
			}
			if n.kind == Object {
				if err := p.putQuoted(c.key); err != nil {
					return err
				}
				if err := p.putByte(':'); err != nil {
					return err
				}
				if indent {
					if err := p.putByte('\t'); err != nil {
						return err
					}
				}
			}
			if err := p.value(c, indent, depth+1); err != nil {
				return err
			}
			if c.next != nil {
				if err := p.putByte(','); err != nil {
					return err
				}
			}
		}
		if indent {
			if err := p.putByte('\n'); err != nil {
				return err
			}
			if err := p.putTabs(depth); err != nil {
				return err
			}
		}
		return p.putByte(rb)
	default:
		return fmt.Errorf("cannot print %v node", n.kind)
	}
}

// pow2gt returns the least power of two >= x. The result may wrap negative
// for inputs near the int range; callers must check.
func pow2gt(x int) int {
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}
