// Package match provides value matchers: predicates over values with a
// textual description used in verification diagnostics.
//
// Matchers are pure - Matches may be called any number of times with the
// same value and must return the same result.
package match

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Matcher is a predicate over values of type V.
//
// Implementations must be stateless: Matches must not mutate the matcher
// or the value, and repeated calls with equal values must agree.
type Matcher[V any] interface {
	// Matches reports whether v satisfies the predicate.
	Matches(v V) bool

	// Describe returns a short human-readable description of the
	// predicate, used verbatim in diagnostic messages.
	Describe() string
}

// Eq matches values deeply equal to want (reflect.DeepEqual semantics,
// so slices, maps, and structs compare element-wise).
func Eq[V any](want V) Matcher[V] {
	return eq[V]{want: want}
}

type eq[V any] struct {
	want V
}

func (m eq[V]) Matches(v V) bool {
	return reflect.DeepEqual(v, m.want)
}

func (m eq[V]) Describe() string {
	return "equals " + formatValue(m.want)
}

// Anything matches every value.
func Anything[V any]() Matcher[V] {
	return anything[V]{}
}

type anything[V any] struct{}

func (anything[V]) Matches(V) bool {
	return true
}

func (anything[V]) Describe() string {
	return "anything"
}

// Func wraps an arbitrary predicate function with a description.
// The function must be pure (no hidden state advance between calls).
func Func[V any](desc string, f func(V) bool) Matcher[V] {
	return funcMatcher[V]{desc: desc, f: f}
}

type funcMatcher[V any] struct {
	desc string
	f    func(V) bool
}

func (m funcMatcher[V]) Matches(v V) bool {
	return m.f(v)
}

func (m funcMatcher[V]) Describe() string {
	return m.desc
}

// Not inverts a matcher.
func Not[V any](m Matcher[V]) Matcher[V] {
	return not[V]{inner: m}
}

type not[V any] struct {
	inner Matcher[V]
}

func (m not[V]) Matches(v V) bool {
	return !m.inner.Matches(v)
}

func (m not[V]) Describe() string {
	return "not (" + m.inner.Describe() + ")"
}

// AllOf matches when every child matcher matches.
// With no children it matches everything.
func AllOf[V any](ms ...Matcher[V]) Matcher[V] {
	return composite[V]{matchers: ms, all: true}
}

// AnyOf matches when at least one child matcher matches.
// With no children it matches nothing.
func AnyOf[V any](ms ...Matcher[V]) Matcher[V] {
	return composite[V]{matchers: ms, all: false}
}

type composite[V any] struct {
	matchers []Matcher[V]
	all      bool
}

func (m composite[V]) Matches(v V) bool {
	for _, child := range m.matchers {
		if child.Matches(v) == !m.all {
			// Short-circuit: a miss fails AllOf, a hit satisfies AnyOf.
			return !m.all
		}
	}
	return m.all
}

func (m composite[V]) Describe() string {
	parts := make([]string, len(m.matchers))
	for i, child := range m.matchers {
		parts[i] = child.Describe()
	}
	joiner := "any of ("
	if m.all {
		joiner = "all of ("
	}
	return joiner + strings.Join(parts, "; ") + ")"
}

// formatValue renders a value for descriptions. Strings are quoted so
// empty and whitespace-only values stay visible in diagnostics.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}
