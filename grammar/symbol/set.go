package symbol

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Set is a set of symbols. Iteration follows the order defined by Compare, so two sets holding the same
// symbols always print the same way.
type Set struct {
	s *treeset.Set
}

func NewSet(syms ...Symbol) *Set {
	set := &Set{
		s: treeset.NewWith(Compare),
	}
	for _, sym := range syms {
		set.s.Add(sym)
	}
	return set
}

// Add adds sym and reports whether the set changed.
func (s *Set) Add(sym Symbol) bool {
	if s.s.Contains(sym) {
		return false
	}
	s.s.Add(sym)
	return true
}

// Merge adds every symbol of o and reports whether the set changed.
func (s *Set) Merge(o *Set) bool {
	return s.MergeExcept(o)
}

// MergeExcept adds every symbol of o except the excluded ones and reports whether the set changed.
func (s *Set) MergeExcept(o *Set, excluded ...Symbol) bool {
	if o == nil {
		return false
	}
	changed := false
	it := o.s.Iterator()
	for it.Next() {
		sym := it.Value().(Symbol)
		if isOneOf(sym, excluded) {
			continue
		}
		if s.Add(sym) {
			changed = true
		}
	}
	return changed
}

func isOneOf(sym Symbol, syms []Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}

func (s *Set) Remove(sym Symbol) {
	s.s.Remove(sym)
}

func (s *Set) Contains(sym Symbol) bool {
	return s.s.Contains(sym)
}

func (s *Set) Len() int {
	return s.s.Size()
}

func (s *Set) Copy() *Set {
	c := NewSet()
	c.Merge(s)
	return c
}

func (s *Set) Equals(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	it := s.s.Iterator()
	for it.Next() {
		if !o.s.Contains(it.Value()) {
			return false
		}
	}
	return true
}

// Symbols returns the members in Compare order.
func (s *Set) Symbols() []Symbol {
	syms := make([]Symbol, 0, s.s.Size())
	it := s.s.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(Symbol))
	}
	return syms
}

// Texts returns the text of the members in Compare order.
func (s *Set) Texts() []string {
	texts := make([]string, 0, s.s.Size())
	for _, sym := range s.Symbols() {
		texts = append(texts, sym.text)
	}
	return texts
}

func (s *Set) String() string {
	return "{" + strings.Join(s.Texts(), ", ") + "}"
}
