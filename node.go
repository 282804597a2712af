// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"fmt"
	"iter"
	"math"
)

// Kind is the type of a JSON value held by a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // zero value, not a valid JSON value
	Null                // constant: null
	False               // constant: false
	True                // constant: true
	Number              // number
	String              // quoted string
	Raw                 // pre-encoded JSON text, emitted verbatim
	Array               // array of values
	Object              // collection of key-value members
)

var kindStr = [...]string{
	Invalid: "invalid",
	Null:    "null",
	False:   "false",
	True:    "true",
	Number:  "number",
	String:  "string",
	Raw:     "raw",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Node is a single JSON value. Arrays and objects hold their members as an
// ordered chain of child nodes, and a node is a member of at most one parent.
// The zero value is ready for use as an Invalid node, but most callers should
// construct nodes with the typed constructors or with Parse.
//
// The methods of a nil *Node behave as those of an Invalid node, so reads
// can be chained without intermediate checks:
//
//	total := v.Member("stats").MemberFold("count").Int()
type Node struct {
	kind Kind

	num  float64
	inum int64

	text string // value for String and Raw kinds

	key    string
	hasKey bool // set only while the node is (or was) an object member

	firstChild *Node // head of the member chain, Array and Object only
	next, prev *Node // sibling links within the parent's chain
}

// NewNull constructs a new null node.
func NewNull() *Node { return &Node{kind: Null} }

// NewBool constructs a new Boolean node with the given value.
func NewBool(value bool) *Node {
	if value {
		return &Node{kind: True}
	}
	return &Node{kind: False}
}

// NewNumber constructs a new number node with the given value.
func NewNumber(value float64) *Node {
	return &Node{kind: Number, num: value, inum: itrunc(value)}
}

// NewString constructs a new string node with the given value.
func NewString(value string) *Node { return &Node{kind: String, text: value} }

// NewRaw constructs a node that renders as the literal text js, which the
// caller asserts is valid JSON. The text is not checked; printing a tree
// containing malformed raw text produces malformed output.
func NewRaw(js string) *Node { return &Node{kind: Raw, text: js} }

// NewArray constructs a new array node containing the given items, in order.
// The items must not already be members of another array or object.
func NewArray(items ...*Node) *Node {
	arr := &Node{kind: Array}
	for _, item := range items {
		arr.link(item)
	}
	return arr
}

// NewObject constructs a new object node containing the given members, in
// order. Each member must carry a key (see Field); NewObject panics if one
// does not.
func NewObject(members ...*Node) *Node {
	obj := &Node{kind: Object}
	for _, m := range members {
		if !m.hasKey {
			panic("jdom: object member has no key")
		}
		obj.link(m)
	}
	return obj
}

// Field constructs an object member with the given key and value.
// The value must be a string, int, int64, float64, bool, nil, or *Node.
// Field panics for other types.
func Field(key string, value any) *Node {
	n := ToNode(value)
	n.key, n.hasKey = key, true
	return n
}

// ToNode converts a plain value into a Node. A nil value becomes a null
// node, and a *Node is returned unchanged. ToNode panics if v does not have
// one of the supported types: string, int, int64, float64, bool, nil, *Node.
func ToNode(v any) *Node {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case *Node:
		return t
	case bool:
		return NewBool(t)
	case string:
		return NewString(t)
	case int:
		return NewNumber(float64(t))
	case int64:
		return NewNumber(float64(t))
	case float64:
		return NewNumber(t)
	default:
		panic(fmt.Sprintf("jdom: invalid value type %T", v))
	}
}

// ArrayOf constructs an array node from a sequence of values.
// Each value must be a valid argument to ToNode, or ArrayOf panics.
func ArrayOf[T any](vs ...T) *Node {
	arr := &Node{kind: Array}
	for _, v := range vs {
		arr.link(ToNode(v))
	}
	return arr
}

// Kind reports the kind of n. A nil node is Invalid.
func (n *Node) Kind() Kind {
	if n == nil {
		return Invalid
	}
	return n.kind
}

// IsInvalid reports whether n is nil or has no valid kind.
func (n *Node) IsInvalid() bool { return n.Kind() == Invalid }

// IsNull reports whether n is a null node.
func (n *Node) IsNull() bool { return n.Kind() == Null }

// IsFalse reports whether n is the Boolean false.
func (n *Node) IsFalse() bool { return n.Kind() == False }

// IsTrue reports whether n is the Boolean true.
func (n *Node) IsTrue() bool { return n.Kind() == True }

// IsBool reports whether n is a Boolean node of either value.
func (n *Node) IsBool() bool { k := n.Kind(); return k == False || k == True }

// IsNumber reports whether n is a number node.
func (n *Node) IsNumber() bool { return n.Kind() == Number }

// IsString reports whether n is a string node.
func (n *Node) IsString() bool { return n.Kind() == String }

// IsRaw reports whether n is a raw JSON node.
func (n *Node) IsRaw() bool { return n.Kind() == Raw }

// IsArray reports whether n is an array node.
func (n *Node) IsArray() bool { return n.Kind() == Array }

// IsObject reports whether n is an object node.
func (n *Node) IsObject() bool { return n.Kind() == Object }

// Float returns the value of a number node, or 0 for any other kind.
func (n *Node) Float() float64 {
	if n.Kind() == Number {
		return n.num
	}
	return 0
}

// Int returns the value of a number node truncated toward zero, saturating
// at the int64 range. It returns 0 for any other kind.
func (n *Node) Int() int64 {
	if n.Kind() == Number {
		return n.inum
	}
	return 0
}

// Bool returns the value of a Boolean node, or false for any other kind.
func (n *Node) Bool() bool { return n.Kind() == True }

// Text returns the value of a string or raw node, or "" for any other kind.
func (n *Node) Text() string {
	if k := n.Kind(); k == String || k == Raw {
		return n.text
	}
	return ""
}

// Key reports the object key of n. The flag is false if n is not an object
// member.
func (n *Node) Key() (string, bool) {
	if n == nil {
		return "", false
	}
	return n.key, n.hasKey
}

// SetNumber makes n a number node with the given value, keeping a truncated
// integer snapshot in sync. Any previous value or members are discarded.
func (n *Node) SetNumber(value float64) {
	n.reset(Number)
	n.num, n.inum = value, itrunc(value)
}

// SetBool makes n a Boolean node with the given value. Any previous value or
// members are discarded.
func (n *Node) SetBool(value bool) {
	if value {
		n.reset(True)
	} else {
		n.reset(False)
	}
}

// SetText sets the text of a string or raw node. For any other kind it makes
// n a string node, discarding any previous value or members.
func (n *Node) SetText(value string) {
	if n.kind != String && n.kind != Raw {
		n.reset(String)
	}
	n.text = value
}

// reset clears the value fields of n and sets its kind.
// Structural links and the member key are preserved.
func (n *Node) reset(kind Kind) {
	n.kind = kind
	n.num, n.inum = 0, 0
	n.text = ""
	n.firstChild = nil
}

// Len reports the number of members of an array or object, or 0 for any
// other kind.
func (n *Node) Len() int {
	if !n.IsArray() && !n.IsObject() {
		return 0
	}
	var size int
	for c := n.firstChild; c != nil; c = c.next {
		size++
	}
	return size
}

// At returns the i'th member of an array or object, or nil if i is out of
// range or n has no members.
func (n *Node) At(i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	c := n.firstChild
	for c != nil && i > 0 {
		c = c.next
		i--
	}
	return c
}

// Children iterates the members of an array or object in order.
// It is safe to detach the current member during iteration.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		c := n.firstChild
		for c != nil {
			next := c.next
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// FindKey returns the first object member for whose key f reports true, or
// nil if there is none.
func (n *Node) FindKey(f func(string) bool) *Node {
	if !n.IsObject() {
		return nil
	}
	for c := n.firstChild; c != nil; c = c.next {
		if f(c.key) {
			return c
		}
	}
	return nil
}

// Ref returns a new unattached node sharing the value and members of n.
// Use Ref to attach an existing value in a second location without detaching
// it: the copy has its own structural links, but edits to shared members are
// visible through both nodes.
func (n *Node) Ref() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.next, cp.prev = nil, nil
	cp.key, cp.hasKey = "", false
	return &cp
}

// Copy returns a duplicate of n. If deep is true the members of arrays and
// objects are copied recursively, in order; otherwise the copy has no
// members. The copy is unattached but keeps the object key of n, if any.
func (n *Node) Copy(deep bool) *Node {
	if n == nil {
		return nil
	}
	cp := n.Ref()
	cp.key, cp.hasKey = n.key, n.hasKey
	cp.firstChild = nil
	if deep {
		for c := n.firstChild; c != nil; c = c.next {
			kc := c.Copy(true)
			kc.key, kc.hasKey = c.key, c.hasKey
			cp.link(kc)
		}
	}
	return cp
}

// Equal reports whether n and m are structurally equal: same kinds, values,
// and member keys in the same order. Object keys are compared
// case-sensitively, and member order is significant.
func (n *Node) Equal(m *Node) bool {
	if n == m {
		return true
	}
	if n == nil || m == nil || n.kind != m.kind {
		return false
	}
	switch n.kind {
	case Number:
		if n.num != m.num {
			return false
		}
	case String, Raw:
		if n.text != m.text {
			return false
		}
	case Array, Object:
		a, b := n.firstChild, m.firstChild
		for a != nil && b != nil {
			if a.hasKey != b.hasKey || a.key != b.key || !a.Equal(b) {
				return false
			}
			a, b = a.next, b.next
		}
		if a != nil || b != nil {
			return false
		}
	}
	return true
}

// link appends item at the end of the member chain of n.
// The caller is responsible for type and key checks.
func (n *Node) link(item *Node) {
	if n.firstChild == nil {
		n.firstChild = item
		return
	}
	last := n.firstChild
	for last.next != nil {
		last = last.next
	}
	last.next, item.prev = item, last
}

// itrunc truncates v toward zero, saturating at the int64 range.
// NaN truncates to 0.
func itrunc(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
