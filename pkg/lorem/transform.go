package lorem

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform rewrites a drawn word.
type Transform interface {
	Apply(word string) (string, error)
}

// TransformFunc adapts a caller function to Transform. Errors it returns
// are passed back to the caller untouched.
type TransformFunc func(word string) (string, error)

func (f TransformFunc) Apply(word string) (string, error) {
	return f(word)
}

// WithArgs binds extra positional arguments to fn.
func WithArgs(fn func(word string, args ...string) (string, error), args ...string) Transform {
	bound := slices.Clone(args)
	return TransformFunc(func(word string) (string, error) {
		return fn(word, bound...)
	})
}

// Operation names a built-in string transform.
type Operation string

const (
	OpCapitalize Operation = "capitalize"
	OpUpper      Operation = "upper"
	OpLower      Operation = "lower"
	OpTitle      Operation = "title"
	OpSwapCase   Operation = "swapcase"
	OpCaseFold   Operation = "casefold"
	OpTrim       Operation = "trim"
	OpTrimLeft   Operation = "trimleft"
	OpTrimRight  Operation = "trimright"
	OpReplace    Operation = "replace"
	OpRepeat     Operation = "repeat"
	OpPrefix     Operation = "prefix"
	OpSuffix     Operation = "suffix"
	OpCenter     Operation = "center"
	OpLeftJust   Operation = "ljust"
	OpRightJust  Operation = "rjust"
)

var operationAliases = map[string]Operation{
	"uppercase": OpUpper,
	"lowercase": OpLower,
	"strip":     OpTrim,
	"lstrip":    OpTrimLeft,
	"rstrip":    OpTrimRight,
}

type operationSpec struct {
	minArgs, maxArgs int
	// prepare validates args once and returns the per-word function.
	prepare func(args []string) (func(string) string, error)
}

func noArgs(fn func(string) string) func([]string) (func(string) string, error) {
	return func([]string) (func(string) string, error) { return fn, nil }
}

var operations = map[Operation]operationSpec{
	OpCapitalize: {prepare: noArgs(capitalize)},
	OpUpper: {prepare: noArgs(func(s string) string {
		return cases.Upper(language.Und).String(s)
	})},
	OpLower: {prepare: noArgs(func(s string) string {
		return cases.Lower(language.Und).String(s)
	})},
	OpTitle: {prepare: noArgs(func(s string) string {
		return cases.Title(language.Und).String(s)
	})},
	OpCaseFold: {prepare: noArgs(func(s string) string {
		return cases.Fold().String(s)
	})},
	OpSwapCase: {prepare: noArgs(swapCase)},
	OpTrim: {maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		if len(args) == 0 {
			return strings.TrimSpace, nil
		}
		cut := args[0]
		return func(s string) string { return strings.Trim(s, cut) }, nil
	}},
	OpTrimLeft: {maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		if len(args) == 0 {
			return func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }, nil
		}
		cut := args[0]
		return func(s string) string { return strings.TrimLeft(s, cut) }, nil
	}},
	OpTrimRight: {maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		if len(args) == 0 {
			return func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }, nil
		}
		cut := args[0]
		return func(s string) string { return strings.TrimRight(s, cut) }, nil
	}},
	OpReplace: {minArgs: 2, maxArgs: 3, prepare: func(args []string) (func(string) string, error) {
		n := -1
		if len(args) == 3 {
			v, err := strconv.Atoi(args[2])
			if err != nil {
				return nil, fmt.Errorf("%w: replace count %q", ErrInvalidArgument, args[2])
			}
			n = v
		}
		old, repl := args[0], args[1]
		return func(s string) string { return strings.Replace(s, old, repl, n) }, nil
	}},
	OpRepeat: {minArgs: 1, maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: repeat count %q", ErrInvalidArgument, args[0])
		}
		return func(s string) string { return strings.Repeat(s, n) }, nil
	}},
	OpPrefix: {minArgs: 1, maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		p := args[0]
		return func(s string) string { return p + s }, nil
	}},
	OpSuffix: {minArgs: 1, maxArgs: 1, prepare: func(args []string) (func(string) string, error) {
		p := args[0]
		return func(s string) string { return s + p }, nil
	}},
	OpCenter:    {minArgs: 1, maxArgs: 2, prepare: padding(OpCenter)},
	OpLeftJust:  {minArgs: 1, maxArgs: 2, prepare: padding(OpLeftJust)},
	OpRightJust: {minArgs: 1, maxArgs: 2, prepare: padding(OpRightJust)},
}

// Operations lists the built-in operation names in sorted order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operations))
	for op := range operations {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// ParseOperation resolves a name (or alias) to an Operation.
func ParseOperation(name string) (Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if op, ok := operationAliases[key]; ok {
		return op, nil
	}
	if _, ok := operations[Operation(key)]; ok {
		return Operation(key), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

type namedTransform struct {
	op Operation
	fn func(string) string
}

func (t namedTransform) Apply(word string) (string, error) {
	return t.fn(word), nil
}

func (t namedTransform) String() string {
	return string(t.op)
}

// Named returns the built-in operation called name, bound to args.
// Unknown names and malformed arguments fail here, before any word is drawn.
func Named(name string, args ...string) (Transform, error) {
	op, err := ParseOperation(name)
	if err != nil {
		return nil, err
	}
	spec := operations[op]
	if len(args) < spec.minArgs || len(args) > spec.maxArgs {
		return nil, fmt.Errorf("%w: %s takes %d to %d arguments, got %d",
			ErrInvalidArgument, op, spec.minArgs, spec.maxArgs, len(args))
	}
	fn, err := spec.prepare(slices.Clone(args))
	if err != nil {
		return nil, err
	}
	return namedTransform{op: op, fn: fn}, nil
}

// ParseTransform parses "name" or "name:arg1,arg2".
func ParseTransform(spec string) (Transform, error) {
	name, rest, found := strings.Cut(spec, ":")
	if !found {
		return Named(name)
	}
	return Named(name, strings.Split(rest, ",")...)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + cases.Lower(language.Und).String(s[size:])
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

func padding(op Operation) func([]string) (func(string) string, error) {
	return func(args []string) (func(string) string, error) {
		width, err := strconv.Atoi(args[0])
		if err != nil || width < 0 {
			return nil, fmt.Errorf("%w: %s width %q", ErrInvalidArgument, op, args[0])
		}
		fill := " "
		if len(args) == 2 {
			if utf8.RuneCountInString(args[1]) != 1 {
				return nil, fmt.Errorf("%w: %s fill must be one character", ErrInvalidArgument, op)
			}
			fill = args[1]
		}
		return func(s string) string {
			margin := width - utf8.RuneCountInString(s)
			if margin <= 0 {
				return s
			}
			switch op {
			case OpLeftJust:
				return s + strings.Repeat(fill, margin)
			case OpRightJust:
				return strings.Repeat(fill, margin) + s
			}
			left := margin/2 + (margin & width & 1)
			return strings.Repeat(fill, left) + s + strings.Repeat(fill, margin-left)
		}, nil
	}
}
