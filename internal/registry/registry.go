// Package registry resolves named, parameterized component factories
// from configuration strings.
//
// A configuration string is either a bare name ("first") or a name
// followed by a slash and comma-separated positional parameters
// ("ba/100,5"). Parameters are typed by the fixed-arity schema declared
// at registration time. Generators, linkers and output formats all sit
// behind their own Registry instance.
package registry

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/bwelter/graphweave/internal/graph"
)

var (
	// ErrDuplicateName reports registration of an already-taken name.
	ErrDuplicateName = errors.New("duplicate component name")

	// ErrUnknownComponent reports a configuration string whose name is
	// not registered (or not available for the requested orientation).
	ErrUnknownComponent = errors.New("unknown component")

	// ErrParameterCount reports a parameter list whose length does not
	// match the component's declared schema.
	ErrParameterCount = errors.New("parameter count mismatch")

	// ErrParameterParse reports a parameter that cannot be parsed as
	// its declared type.
	ErrParameterParse = errors.New("parameter parse error")
)

// Kind is the declared type of one positional parameter.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

// Param describes one positional parameter of a component's schema.
// Name only appears in help and error text.
type Param struct {
	Name string
	Kind Kind
}

// Value is one parsed parameter.
type Value struct {
	kind Kind
	i    int
	f    float64
	s    string
}

// IntValue builds an integer Value; used by factories under test.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// FloatValue builds a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue builds a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Int returns the integer payload.
func (v Value) Int() int { return v.i }

// Float returns the float payload, widening an integer payload.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// Availability restricts which orientations a component may be
// resolved for. Most components serve both; some (e.g. bidirectional
// linkers, the Aspartix format) only make sense for directed graphs.
type Availability int

const (
	Both Availability = iota
	DirectedOnly
	UndirectedOnly
)

func (a Availability) allows(o graph.Orientation) bool {
	switch a {
	case DirectedOnly:
		return o == graph.Directed
	case UndirectedOnly:
		return o == graph.Undirected
	default:
		return true
	}
}

// FactoryFunc builds a component instance from parsed parameters for
// the requested orientation. Factories for components with a fixed
// native orientation wrap the instance in the orientation adapter
// before returning it, so callers of Resolve never see the difference.
type FactoryFunc[T any] func(args []Value, o graph.Orientation) (T, error)

type entry[T any] struct {
	name        string
	description string
	avail       Availability
	params      []Param
	factory     FactoryFunc[T]
}

// Registry maps component names to parameterized factories. Entries
// are registered once at process start and immutable afterwards, so
// lookups need no locking.
type Registry[T any] struct {
	entries map[string]*entry[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*entry[T])}
}

// Register adds a named factory. Names are case-sensitive and must be
// unique within the registry.
func (r *Registry[T]) Register(name, description string, avail Availability, params []Param, factory FactoryFunc[T]) error {
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.entries[name] = &entry[T]{
		name:        name,
		description: description,
		avail:       avail,
		params:      params,
		factory:     factory,
	}
	return nil
}

// MustRegister is Register for static catalogs built at process start.
func (r *Registry[T]) MustRegister(name, description string, avail Availability, params []Param, factory FactoryFunc[T]) {
	if err := r.Register(name, description, avail, params, factory); err != nil {
		panic(err)
	}
}

// Resolve parses a configuration string and builds a ready-to-use
// component instance for the requested orientation. The string is
// split at the first slash into a name and an optional comma-separated
// parameter list; surrounding whitespace is trimmed, inner whitespace
// is significant.
func (r *Registry[T]) Resolve(config string, o graph.Orientation) (T, error) {
	var zero T
	config = strings.TrimSpace(config)

	name, rawParams, _ := strings.Cut(config, "/")
	e, ok := r.entries[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	if !e.avail.allows(o) {
		return zero, fmt.Errorf("%w: %q is not available for %s graphs", ErrUnknownComponent, name, o)
	}

	args, err := parseArgs(e.params, rawParams)
	if err != nil {
		return zero, fmt.Errorf("resolving %q: %w", name, err)
	}
	return e.factory(args, o)
}

func parseArgs(schema []Param, rawParams string) ([]Value, error) {
	var parts []string
	if rawParams != "" {
		parts = strings.Split(rawParams, ",")
	}
	if len(parts) != len(schema) {
		return nil, fmt.Errorf("%w: expected %d parameters, got %d", ErrParameterCount, len(schema), len(parts))
	}

	args := make([]Value, len(parts))
	for i, raw := range parts {
		p := schema[i]
		switch p.Kind {
		case KindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not an integer", ErrParameterParse, p.Name, raw)
			}
			args[i] = IntValue(n)
		case KindFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not a number", ErrParameterParse, p.Name, raw)
			}
			args[i] = FloatValue(f)
		case KindString:
			args[i] = StringValue(raw)
		}
	}
	return args, nil
}

// Listing is one (name, description) pair produced by List.
type Listing struct {
	Name        string
	Description string
}

// List yields all entries sorted by name. Entries restricted to one
// orientation are included; availability is a resolve-time concern.
func (r *Registry[T]) List() iter.Seq[Listing] {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return func(yield func(Listing) bool) {
		for _, name := range names {
			e := r.entries[name]
			if !yield(Listing{Name: e.name, Description: e.description}) {
				return
			}
		}
	}
}

// ListFor yields the entries available for the given orientation,
// sorted by name.
func (r *Registry[T]) ListFor(o graph.Orientation) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		for l := range r.List() {
			if !r.entries[l.Name].avail.allows(o) {
				continue
			}
			if !yield(l) {
				return
			}
		}
	}
}

// Columns lays listings out as aligned rows, the name column padded to
// the longest name plus four spaces.
func Columns(listings iter.Seq[Listing]) string {
	var all []Listing
	width := 0
	for l := range listings {
		all = append(all, l)
		width = max(width, len(l.Name))
	}
	var sb strings.Builder
	for _, l := range all {
		fmt.Fprintf(&sb, "%-*s%s\n", width+4, l.Name, l.Description)
	}
	return sb.String()
}
