// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/creachadair/jdom"
)

func TestPrintCompact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`null`, `null`},
		{`[ ]`, `[]`},
		{`{ }`, `{}`},
		{`[null, true, false]`, `[null,true,false]`},
		{`{"a": [1, {"b": "c"}], "d": {}}`, `{"a":[1,{"b":"c"}],"d":{}}`},
		{`"tab\tnewline\nquote\""`, `"tab\tnewline\nquote\""`},
		{"\"a\\u0001b\"", "\"a\\u0001b\""}, // control escape survives
	}
	for _, tc := range tests {
		v := mustParse(t, tc.input)
		if got := v.JSON(); got != tc.want {
			t.Errorf("JSON of %q: got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}

func TestPrintFormatted(t *testing.T) {
	v := jdom.NewObject(
		jdom.Field("name", "Jack"),
		jdom.Field("list", jdom.ArrayOf(1, 2)),
		jdom.Field("empty", jdom.NewObject()),
	)
	want := strings.Join([]string{
		`{`,
		"\t\"name\":\t\"Jack\",",
		"\t\"list\":\t[",
		"\t\t1,",
		"\t\t2",
		"\t],",
		"\t\"empty\":\t{}",
		`}`,
	}, "\n")
	if got := v.Format(); got != want {
		t.Errorf("Format result differs (got, want):\n%s", diff.LineDiff(got, want))
	}

	// Empty containers at top level print on one line.
	if got := jdom.NewArray().Format(); got != `[]` {
		t.Errorf("Format empty array: got %#q, want []", got)
	}
	if got := jdom.NewObject().Format(); got != `{}` {
		t.Errorf("Format empty object: got %#q, want {}", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`null`,
		`-12.5`,
		`"whatever\nworks"`,
		`[1, [2, [3, [4]]], {}]`,
		`{"a": {"b": {"c": [true, false, null]}}, "d": "e", "f": [0.25]}`,
	}
	for _, input := range inputs {
		v := mustParse(t, input)
		for _, text := range []string{v.JSON(), v.Format()} {
			w, err := jdom.Parse([]byte(text))
			if err != nil {
				t.Errorf("Reparse %#q: unexpected error: %v", text, err)
			} else if !w.Equal(v) {
				t.Errorf("Round trip of %q changed the value: %#q", input, text)
			}
		}
	}
}

func TestNumberText(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, `0`},
		{0.1, `0.1`},
		{-1.5, `-1.5`},
		{1e300, `1e+300`},
		{123456789012345, `123456789012345`},
		{math.NaN(), `null`},
		{math.Inf(1), `null`},
		{math.Inf(-1), `null`},
	}
	for _, tc := range tests {
		if got := jdom.NewNumber(tc.input).JSON(); got != tc.want {
			t.Errorf("JSON of %v: got %#q, want %#q", tc.input, got, tc.want)
		}
	}

	// Finite values must re-parse to the identical bits, including ones that
	// need all seventeen digits.
	fidelity := []float64{0.1, 1.0 / 3, math.Pi, 5e-324, math.MaxFloat64, 1e16 + 2}
	for _, v := range fidelity {
		text := jdom.NewNumber(v).JSON()
		back, err := strconv.ParseFloat(text, 64)
		if err != nil {
			t.Errorf("Reparse %q: unexpected error: %v", text, err)
		} else if back != v {
			t.Errorf("Reparse %q: got %v, want %v", text, back, v)
		}
	}

	// Negative zero keeps its sign.
	text := jdom.NewNumber(math.Copysign(0, -1)).JSON()
	if back, _ := strconv.ParseFloat(text, 64); !math.Signbit(back) {
		t.Errorf("Print -0: got %q, lost the sign", text)
	}
}

func TestAppendJSON(t *testing.T) {
	v := mustParse(t, `{"a": [1, 2, 3], "b": "text"}`)

	t.Run("Empty", func(t *testing.T) {
		got, err := jdom.AppendJSON(nil, v, false)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if string(got) != v.JSON() {
			t.Errorf("AppendJSON: got %#q, want %#q", got, v.JSON())
		}
	})

	t.Run("Indent", func(t *testing.T) {
		got, err := jdom.AppendJSON(nil, v, true)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if string(got) != v.Format() {
			t.Errorf("AppendJSON result differs (got, want):\n%s", diff.LineDiff(string(got), v.Format()))
		}
	})

	t.Run("Prefix", func(t *testing.T) {
		got, err := jdom.AppendJSON([]byte("data: "), v, false)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if want := "data: " + v.JSON(); string(got) != want {
			t.Errorf("AppendJSON: got %#q, want %#q", got, want)
		}
	})

	t.Run("SmallHint", func(t *testing.T) {
		got, err := jdom.AppendJSON(make([]byte, 0, 2), v, false)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if string(got) != v.JSON() {
			t.Errorf("AppendJSON: got %#q, want %#q", got, v.JSON())
		}
	})

	t.Run("BigHint", func(t *testing.T) {
		dst := make([]byte, 0, 4096)
		got, err := jdom.AppendJSON(dst, v, false)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if string(got) != v.JSON() {
			t.Errorf("AppendJSON: got %#q, want %#q", got, v.JSON())
		}
		if &got[:1][0] != &dst[:1][0] {
			t.Error("AppendJSON reallocated despite a sufficient hint")
		}
	})

	t.Run("InvalidNode", func(t *testing.T) {
		dst := []byte("keep")
		got, err := jdom.AppendJSON(dst, new(jdom.Node), false)
		if err == nil {
			t.Fatal("AppendJSON of invalid node: wanted error")
		}
		if string(got) != "keep" {
			t.Errorf("Buffer after error: got %#q, want keep", got)
		}
	})
}

func TestFormatWriter(t *testing.T) {
	v := mustParse(t, `{"a": 1}`)
	var buf bytes.Buffer
	if err := jdom.Format(&buf, v); err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	if got := buf.String(); got != v.Format() {
		t.Errorf("Format: got %#q, want %#q", got, v.Format())
	}
}

func TestMarshalJSON(t *testing.T) {
	v := mustParse(t, `{"a": [1, 2], "b": null}`)
	bits, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	if got, want := string(bits), v.JSON(); got != want {
		t.Errorf("Marshal: got %#q, want %#q", got, want)
	}

	if _, err := json.Marshal(new(jdom.Node)); err == nil {
		t.Error("Marshal invalid node: wanted error")
	}
}

func TestPrintInvalid(t *testing.T) {
	var zero jdom.Node
	if got := zero.JSON(); got != "" {
		t.Errorf("JSON of invalid: got %#q, want empty", got)
	}
	if got := zero.Format(); got != "" {
		t.Errorf("Format of invalid: got %#q, want empty", got)
	}
	if got := zero.String(); got != "<invalid>" {
		t.Errorf("String of invalid: got %#q, want <invalid>", got)
	}
}
