// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jdom implements a mutable document model for JSON values.
//
// # Documents
//
// The Node type represents a single JSON value: a null, Boolean, number,
// string, array, or object. Arrays and objects link their members into an
// ordered chain of child nodes, so a document is a tree of nodes that can be
// edited in place: members can be appended, inserted, detached, and replaced
// without re-encoding the rest of the document.
//
// Construct nodes with the typed constructors:
//
//	v := jdom.NewObject(
//	   jdom.Field("name", "Jack (\"Bee\") Nimble"),
//	   jdom.Field("format", jdom.NewObject(
//	      jdom.Field("type", "rect"),
//	      jdom.Field("width", 1920),
//	      jdom.Field("interlace", false),
//	   )),
//	)
//
// # Parsing
//
// Parse decodes a byte slice into a node tree:
//
//	v, err := jdom.Parse(data)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse reads a single value and ignores any input after it. To require that
// the whole input is consumed, or to recover the offset where parsing ended,
// use ParseWithOptions. Parse failures have concrete type *SyntaxError and
// report the byte offset of the first offending character.
//
// # Printing
//
// The JSON method renders a node compactly; Format renders it with newlines
// and tab indentation. Both compute the exact output size in a measuring
// pass and fill a single allocation. For repeated or size-hinted rendering,
// AppendJSON appends to a caller-provided buffer and grows it geometrically:
//
//	buf := make([]byte, 0, 256)
//	buf, err := jdom.AppendJSON(buf, v, false)
//
// Numbers print with the fewest of 15 or 17 significant digits that
// round-trip to the original value. NaN and infinities have no JSON
// representation and print as null.
//
// # Concurrency
//
// Nodes have no internal locking. A tree may be read concurrently, but any
// mutation requires exclusive access to the whole tree.
package jdom
