package dub

import (
	"fmt"
)

type matcher interface {
	match(i int) bool
}

type rangeMatch struct {
	start, end int
}

func (r rangeMatch) match(i int) bool {
	return (i >= r.start || r.start == -1) && (i <= r.end || r.end == -1)
}

var matchAll = rangeMatch{-1, -1}

type listMatch []int

func (l listMatch) match(i int) bool {
	for _, k := range l {
		if k == i {
			return true
		}
	}
	return false
}

// Keys evaluates the expression against numKeys keys and returns the selected
// zero-based key indices in ascending order. lookup resolves key names to
// zero-based indices.
func (e KeyExpr) Keys(numKeys int, lookup func(name string) (int, error)) ([]int, error) {
	matchers := append([]matcher(nil), e.matchers...)
	for _, name := range e.names {
		if lookup == nil {
			return nil, fmt.Errorf("key names are not supported: %s", name)
		}
		idx, err := lookup(name)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, listMatch{idx + 1})
	}
	for _, m := range matchers {
		if err := checkRange(m, numKeys); err != nil {
			return nil, err
		}
	}
	var keys []int
	for i := 1; i <= numKeys; i++ {
		for _, m := range matchers {
			if m.match(i) {
				keys = append(keys, i-1)
				break
			}
		}
	}
	return keys, nil
}

func checkRange(m matcher, numKeys int) error {
	switch m := m.(type) {
	case listMatch:
		for _, k := range m {
			if k < 1 || k > numKeys {
				return fmt.Errorf("key %d out of range 1-%d", k, numKeys)
			}
		}
	case rangeMatch:
		if m == matchAll {
			return nil
		}
		if m.start < 1 || m.end > numKeys || m.start > m.end {
			return fmt.Errorf("key range %d:%d out of range 1-%d", m.start, m.end, numKeys)
		}
	}
	return nil
}
