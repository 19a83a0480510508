// Package schema provides the declarative attribute machinery behind the
// docsmith configuration: descriptors that know how to parse, read, and write
// one field each, an ordered registry of them, and binding of descriptors to
// a command-line flag set.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ParseFunc converts a raw textual value into the field's semantic value.
// Returning ErrSkipAssign leaves the field at its current value.
type ParseFunc func(raw string) (any, error)

// FlagSpec describes how an attribute surfaces on the command line.
type FlagSpec struct {
	Long        string
	Short       string // single letter, empty for long-only flags
	Placeholder string // value placeholder for usage text, e.g. "FOLDER"
	Boolean     bool   // flag takes no value; presence means "true"
	Negatable   bool   // also register --no-<long> to set false
}

// Attribute describes one configuration field: its name, help text, optional
// CLI binding, parse function, and typed accessors into the target struct.
// Attributes are stateless after construction; Set and Get only touch the
// target passed in.
type Attribute[T any] struct {
	Name        string
	Description []string
	Flag        *FlagSpec // nil means not settable from the command line
	Parse       ParseFunc // nil means identity: the raw string is stored as-is
	Getter      func(*T) any
	Setter      func(*T, any) error
}

// Get returns the field addressed by the attribute.
func (a *Attribute[T]) Get(target *T) (any, error) {
	if a.Getter == nil {
		return nil, &SchemaMismatch{Attribute: a.Name}
	}
	return a.Getter(target), nil
}

// Set parses raw and stores the result in the target. Parse failures come
// back as *ParseError; a setter rejecting the parsed value's type is a
// *SchemaMismatch.
func (a *Attribute[T]) Set(target *T, raw string) error {
	value := any(raw)
	if a.Parse != nil {
		parsed, err := a.Parse(raw)
		if errors.Is(err, ErrSkipAssign) {
			return nil
		}
		if err != nil {
			return &ParseError{Attribute: a.Name, Raw: raw, Err: err}
		}
		value = parsed
	}
	if a.Setter == nil {
		return &SchemaMismatch{Attribute: a.Name}
	}
	if err := a.Setter(target, value); err != nil {
		return &SchemaMismatch{Attribute: a.Name, Err: err}
	}
	return nil
}

// Bind registers the attribute's flag with the flag set so that a match on
// the command line calls Set against the target. Attributes without a flag
// spec are declaration-only and bind nothing.
func (a *Attribute[T]) Bind(target *T, fs *pflag.FlagSet) {
	if a.Flag == nil {
		return
	}
	v := &flagValue[T]{attr: a, target: target}
	f := fs.VarPF(v, a.Flag.Long, a.Flag.Short, a.Usage())
	if a.Flag.Boolean {
		f.NoOptDefVal = "true"
		if a.Flag.Negatable {
			nv := &flagValue[T]{attr: a, target: target, invert: true}
			nf := fs.VarPF(nv, "no-"+a.Flag.Long, "", "disable --"+a.Flag.Long)
			nf.NoOptDefVal = "true"
		}
	}
}

// Usage returns the attribute's help text as a single line.
func (a *Attribute[T]) Usage() string {
	return strings.Join(a.Description, " ")
}

// flagValue adapts an attribute to pflag.Value. Every flag match on the
// command line funnels through Attribute.Set, so later occurrences of the
// same flag overwrite earlier ones in argv order.
type flagValue[T any] struct {
	attr   *Attribute[T]
	target *T
	invert bool // --no-<flag>: store the negation of the boolean value
}

func (v *flagValue[T]) Set(raw string) error {
	if v.invert {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		raw = strconv.FormatBool(!b)
	}
	return v.attr.Set(v.target, raw)
}

func (v *flagValue[T]) String() string {
	if v.attr.Getter == nil || v.target == nil {
		return ""
	}
	switch val := v.attr.Getter(v.target).(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprint(val)
	}
}

func (v *flagValue[T]) Type() string {
	if v.attr.Flag.Boolean {
		return "bool"
	}
	if p := v.attr.Flag.Placeholder; p != "" {
		return strings.ToLower(p)
	}
	return "string"
}
