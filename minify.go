// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

// Minify strips insignificant whitespace and comments from the JSON text in
// data, compacting it in place, and returns the shortened prefix of data.
// Space, tab, carriage return, and newline are dropped outside of string
// literals, as are //-to-end-of-line and /*...*/ comments. String literals
// are copied verbatim, including their escape sequences and any embedded
// quotes or comment delimiters. Minify is a single left-to-right pass; it
// does not validate the input, and minifying already-minified text returns
// it unchanged.
func Minify(data []byte) []byte {
	var into int
	i := 0
	for i < len(data) {
		switch b := data[i]; {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			i++
		case b == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case b == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			if i+1 < len(data) {
				i += 2 // consume "*/"
			} else {
				i = len(data) // unterminated block comment
			}
		case b == '"':
			data[into] = b
			into++
			i++
			for i < len(data) && data[i] != '"' {
				if data[i] == '\\' && i+1 < len(data) {
					data[into] = data[i]
					into++
					i++
				}
				data[into] = data[i]
				into++
				i++
			}
			if i < len(data) {
				data[into] = data[i] // closing quote
				into++
				i++
			}
		default:
			data[into] = b
			into++
			i++
		}
	}
	return data[:into]
}
