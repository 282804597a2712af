// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// QuotedLen reports the exact number of bytes Quote produces for src,
// without the enclosing quotation marks. Each quote, backslash, or control
// character costs 2 bytes if it has a short escape and 6 otherwise; all
// other bytes pass through unchanged.
func QuotedLen(src mem.RO) int {
	var n int
	for i := 0; i < src.Len(); i++ {
		switch b := src.At(i); {
		case b == '"' || b == '\\':
			n += 2
		case b < ' ':
			if controlEsc[b] != 0 {
				n += 2
			} else {
				n += 6
			}
		default:
			n++
		}
	}
	return n
}

// Quote appends to buf the escaped form of src for inclusion in a JSON
// string, without the enclosing quotation marks, and returns the updated
// slice. Control characters without a short escape are written as \u00XX;
// bytes outside the ASCII range pass through unchanged.
func Quote(buf []byte, src mem.RO) []byte {
	for i := 0; i < src.Len(); i++ {
		switch b := src.At(i); {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b < ' ':
			if c := controlEsc[b]; c != 0 {
				buf = append(buf, '\\', c)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
			}
		default:
			buf = append(buf, b)
		}
	}
	return buf
}
