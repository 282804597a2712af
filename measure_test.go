// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

import "testing"

// The exact-length printer depends on measure computing precisely the number
// of bytes the writing pass produces.
func TestMeasureExact(t *testing.T) {
	inputs := []string{
		`null`,
		`true`,
		`false`,
		`-123.75`,
		`""`,
		`"escape \"this\" and  that"`,
		`[]`,
		`{}`,
		`[[], {}, [{}]]`,
		`[1, [2, 3], "four", null]`,
		`{"a": 1, "deep": {"b": [true, false], "c": {"d": "e\tf"}}, "z": []}`,
	}
	for _, input := range inputs {
		v, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse %q: unexpected error: %v", input, err)
		}
		for _, indent := range []bool{false, true} {
			size, err := v.measure(indent, 0)
			if err != nil {
				t.Fatalf("measure %q: unexpected error: %v", input, err)
			}
			buf, err := appendValue(nil, v, indent, 0)
			if err != nil {
				t.Fatalf("append %q: unexpected error: %v", input, err)
			}
			if len(buf) != size {
				t.Errorf("measure %q indent=%v: got %d, output has %d bytes", input, indent, size, len(buf))
			}
		}
	}
}

func TestPow2(t *testing.T) {
	tests := []struct {
		input, want int
	}{
		{1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {63, 64}, {64, 64}, {65, 128},
		{1<<20 + 1, 1 << 21},
	}
	for _, tc := range tests {
		if got := pow2gt(tc.input); got != tc.want {
			t.Errorf("pow2gt(%d): got %d, want %d", tc.input, got, tc.want)
		}
	}
}

// Both printing strategies must emit identical bytes.
func TestStrategiesAgree(t *testing.T) {
	v, err := Parse([]byte("{\"mixed\": [1, {\"a\": \"b\x00c\"}, [], {}, \"s\"], \"n\": -0.125}"))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	for _, indent := range []bool{false, true} {
		exact, err := printExact(v, indent)
		if err != nil {
			t.Fatalf("printExact: unexpected error: %v", err)
		}
		grown, err := AppendJSON(make([]byte, 0, 1), v, indent)
		if err != nil {
			t.Fatalf("AppendJSON: unexpected error: %v", err)
		}
		if string(exact) != string(grown) {
			t.Errorf("indent=%v: exact %#q, grown %#q", indent, exact, grown)
		}
	}
}
