// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jcolor renders jdom values as indented JSON with ANSI colors for
// terminal display. Color output honors the global color.NoColor setting
// from github.com/fatih/color, which disables itself when the process is
// not attached to a terminal.
package jcolor

import (
	"io"

	"github.com/creachadair/jdom"
	"github.com/fatih/color"
)

// A Formatter carries the settings for colorized printing. The zero value
// is ready for use with the default palette and two-space indentation.
type Formatter struct {
	Key    *color.Color // object keys
	String *color.Color // string values
	Number *color.Color // number values
	Bool   *color.Color // true and false
	Null   *color.Color // null

	Indent string // indentation unit, "  " if empty
}

var (
	keyColor  = color.New(color.FgBlue, color.Bold)
	strColor  = color.New(color.FgGreen)
	numColor  = color.New(color.FgCyan)
	boolColor = color.New(color.FgYellow)
	nullColor = color.New(color.FgHiBlack)
)

// Write renders n to w with default settings.
func Write(w io.Writer, n *jdom.Node) error {
	var f Formatter
	return f.Write(w, n)
}

// Write renders n to w using the settings from f.
func (f *Formatter) Write(w io.Writer, n *jdom.Node) error {
	ew := &errWriter{w: w}
	f.value(ew, n, "")
	return ew.err
}

func (f *Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

func pick(c, fallback *color.Color) *color.Color {
	if c != nil {
		return c
	}
	return fallback
}

func (f *Formatter) value(w io.Writer, n *jdom.Node, indent string) {
	switch n.Kind() {
	case jdom.Null:
		pick(f.Null, nullColor).Fprint(w, "null")
	case jdom.True, jdom.False:
		pick(f.Bool, boolColor).Fprint(w, n.JSON())
	case jdom.Number:
		pick(f.Number, numColor).Fprint(w, n.JSON())
	case jdom.String:
		pick(f.String, strColor).Fprint(w, n.JSON())
	case jdom.Raw:
		io.WriteString(w, n.JSON())
	case jdom.Array:
		cnt := n.Len()
		if cnt == 0 {
			io.WriteString(w, "[]")
			return
		}
		io.WriteString(w, "[\n")
		mdent := indent + f.indent()
		i := 0
		for c := range n.Children() {
			io.WriteString(w, mdent)
			f.value(w, c, mdent)
			i++
			if i < cnt {
				io.WriteString(w, ",")
			}
			io.WriteString(w, "\n")
		}
		io.WriteString(w, indent)
		io.WriteString(w, "]")
	case jdom.Object:
		cnt := n.Len()
		if cnt == 0 {
			io.WriteString(w, "{}")
			return
		}
		io.WriteString(w, "{\n")
		mdent := indent + f.indent()
		i := 0
		for c := range n.Children() {
			io.WriteString(w, mdent)
			key, _ := c.Key()
			pick(f.Key, keyColor).Fprint(w, jdom.NewString(key).JSON())
			io.WriteString(w, ": ")
			f.value(w, c, mdent)
			i++
			if i < cnt {
				io.WriteString(w, ",")
			}
			io.WriteString(w, "\n")
		}
		io.WriteString(w, indent)
		io.WriteString(w, "}")
	default:
		io.WriteString(w, "<invalid>")
	}
}

// errWriter forwards writes to w and retains the first error, so the
// rendering walk does not need to check every write.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
