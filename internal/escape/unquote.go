// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string.
// The input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A UTF-16
// high surrogate escape must be immediately followed by a low surrogate
// escape, and the pair decodes to a single code point. In case of error,
// the int result is the offset in src of the offending escape.
func Unquote(src mem.RO) ([]byte, int, error) {
	dec := make([]byte, 0, src.Len())
	putRune := func(r rune) {
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}

	i := 0
	for i < src.Len() {
		b := src.At(i)
		if b != '\\' {
			dec = append(dec, b)
			i++
			continue
		}
		if i+1 >= src.Len() {
			return nil, i, errors.New("incomplete escape sequence")
		}
		switch c := src.At(i + 1); c {
		case '"', '\\', '/':
			dec = append(dec, c)
			i += 2
		case 'b':
			dec = append(dec, '\b')
			i += 2
		case 'f':
			dec = append(dec, '\f')
			i += 2
		case 'n':
			dec = append(dec, '\n')
			i += 2
		case 'r':
			dec = append(dec, '\r')
			i += 2
		case 't':
			dec = append(dec, '\t')
			i += 2
		case 'u':
			v, err := parseHex4(src, i+2)
			if err != nil {
				return nil, i, err
			}
			r := rune(v)
			i += 6
			if r >= 0xdc00 && r <= 0xdfff {
				return nil, i - 6, errors.New("unpaired low surrogate")
			}
			if r >= 0xd800 && r <= 0xdbff {
				// A high surrogate must be immediately followed by an escaped
				// low surrogate; together they encode one code point.
				if i+1 >= src.Len() || src.At(i) != '\\' || src.At(i+1) != 'u' {
					return nil, i - 6, errors.New("unpaired high surrogate")
				}
				lo, err := parseHex4(src, i+2)
				if err != nil {
					return nil, i, err
				}
				if lo < 0xdc00 || lo > 0xdfff {
					return nil, i, errors.New("invalid low surrogate")
				}
				r = 0x10000 + (r-0xd800)<<10 | (rune(lo) - 0xdc00)
				i += 6
			}
			putRune(r)
		default:
			return nil, i, fmt.Errorf("invalid %q after escape", c)
		}
	}
	return dec, 0, nil
}

// parseHex4 decodes exactly 4 hexadecimal digits of src starting at off.
func parseHex4(src mem.RO, off int) (int64, error) {
	if off+4 > src.Len() {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v int64
	for i := off; i < off+4; i++ {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
