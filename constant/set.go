package constant

import (
	"sort"

	"github.com/samber/lo"
)

// StringSet is a deduplicated set of rule values.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

func (s StringSet) Insert(v string) {
	s[v] = struct{}{}
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Merge(other StringSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Sorted returns the values in ascending byte order.
func (s StringSet) Sorted() []string {
	values := lo.Keys(s)
	sort.Strings(values)
	return values
}
