// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"errors"
	"strings"
)

// Errors reported by the mutation methods of a Node.
var (
	ErrNotContainer = errors.New("node is not an array or object")
	ErrNotFound     = errors.New("member not found")
	ErrNoKey        = errors.New("object member has no key")
)

// Append adds the given items at the end of an array or object, in order.
// Items appended to an object must carry keys (see Field). The items must
// not already be members of another array or object.
func (n *Node) Append(items ...*Node) error {
	if n == nil || (n.kind != Array && n.kind != Object) {
		return ErrNotContainer
	}
	if n.kind == Object {
		for _, item := range items {
			if item == nil || !item.hasKey {
				return ErrNoKey
			}
		}
	}
	for _, item := range items {
		if item == nil {
			return errors.New("append nil node")
		}
		n.link(item)
	}
	return nil
}

// Add appends item to the object n as a member with the given key,
// replacing any key item already carries. Duplicate keys are permitted and
// preserved in order. The item must not already be a member of another
// array or object.
func (n *Node) Add(key string, item *Node) error {
	if n == nil || n.kind != Object {
		return ErrNotContainer
	}
	if item == nil {
		return errors.New("add nil node")
	}
	item.key, item.hasKey = key, true
	n.link(item)
	return nil
}

// Insert places item at position i of the array n, shifting existing members
// to the right. If i is at or past the end of the array, item is appended.
func (n *Node) Insert(i int, item *Node) error {
	if n == nil || n.kind != Array {
		return ErrNotContainer
	}
	if item == nil {
		return errors.New("insert nil node")
	} else if i < 0 {
		return errors.New("negative index")
	}
	old := n.At(i)
	if old == nil {
		n.link(item)
		return nil
	}
	item.next, item.prev = old, old.prev
	old.prev = item
	if item.prev != nil {
		item.prev.next = item
	} else {
		n.firstChild = item
	}
	return nil
}

// Detach unlinks item from the member chain of n in constant time and
// returns it to the caller as an independent root. The members of item are
// not affected. Detach reports ErrNotFound if it can determine that item is
// not a member of n; a node that was never attached anywhere is always
// rejected.
func (n *Node) Detach(item *Node) error {
	if n == nil || (n.kind != Array && n.kind != Object) {
		return ErrNotContainer
	}
	if item == nil || (item.prev == nil && n.firstChild != item) {
		return ErrNotFound
	}
	if item.prev != nil {
		item.prev.next = item.next
	} else {
		n.firstChild = item.next
	}
	if item.next != nil {
		item.next.prev = item.prev
	}
	item.next, item.prev = nil, nil
	return nil
}

// DetachAt unlinks and returns the i'th member of n.
func (n *Node) DetachAt(i int) (*Node, error) {
	item := n.At(i)
	if item == nil {
		if n == nil || (n.kind != Array && n.kind != Object) {
			return nil, ErrNotContainer
		}
		return nil, ErrNotFound
	}
	if err := n.Detach(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DetachKey unlinks and returns the first member of the object n matching
// key without case, or nil if there is none. To detach with exact case, use
// Detach with the result of Member.
func (n *Node) DetachKey(key string) *Node {
	item := n.MemberFold(key)
	if item == nil {
		return nil
	}
	n.Detach(item)
	return item
}

// Replace splices repl into the chain position of old within n and unlinks
// old. If n is an object and repl does not already carry a key, it inherits
// the key of old. After a successful replace, old is an independent root.
func (n *Node) Replace(old, repl *Node) error {
	if n == nil || (n.kind != Array && n.kind != Object) {
		return ErrNotContainer
	}
	if old == nil || (old.prev == nil && n.firstChild != old) {
		return ErrNotFound
	}
	if repl == nil {
		return errors.New("replace with nil node")
	}
	if old == repl {
		return nil
	}
	if n.kind == Object && !repl.hasKey {
		repl.key, repl.hasKey = old.key, old.hasKey
	}
	repl.next, repl.prev = old.next, old.prev
	if repl.next != nil {
		repl.next.prev = repl
	}
	if repl.prev != nil {
		repl.prev.next = repl
	} else {
		n.firstChild = repl
	}
	old.next, old.prev = nil, nil
	return nil
}

// ReplaceAt replaces the i'th member of n with repl.
func (n *Node) ReplaceAt(i int, repl *Node) error {
	old := n.At(i)
	if old == nil {
		if n == nil || (n.kind != Array && n.kind != Object) {
			return ErrNotContainer
		}
		return ErrNotFound
	}
	return n.Replace(old, repl)
}

// ReplaceKey replaces the first member of the object n matching key without
// case. The replacement is given the matched key.
func (n *Node) ReplaceKey(key string, repl *Node) error {
	old := n.MemberFold(key)
	if old == nil {
		if n == nil || n.kind != Object {
			return ErrNotContainer
		}
		return ErrNotFound
	}
	if repl != nil {
		repl.key, repl.hasKey = key, true
	}
	return n.Replace(old, repl)
}

// Member returns the first member of the object n whose key is exactly key,
// or nil if there is none. When duplicate keys exist, the first in chain
// order wins; iteration and printing preserve all duplicates.
func (n *Node) Member(key string) *Node {
	return n.FindKey(func(k string) bool { return k == key })
}

// MemberFold returns the first member of the object n matching key under
// Unicode case folding, or nil if there is none.
func (n *Node) MemberFold(key string) *Node {
	return n.FindKey(func(k string) bool { return strings.EqualFold(k, key) })
}

// Has reports whether the object n has a member matching key without case.
func (n *Node) Has(key string) bool { return n.MemberFold(key) != nil }
