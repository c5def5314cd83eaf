// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Path is a string type for filesystem-path parameters. Values bound to
// a Path field get "~" expansion and path cleaning before the command
// sees them.
type Path string

// Kind classifies a parameter's declared type for coercion.
type Kind int

const (
	// KindPrimitive covers string, bool, the int/uint families,
	// float32/float64, and time.Duration.
	KindPrimitive Kind = iota
	// KindChoice is a string restricted to an enumerated set via the
	// choices tag.
	KindChoice
	// KindPath is the Path type.
	KindPath
	// KindCollection is []string; the flag may repeat.
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindChoice:
		return "choice"
	case KindPath:
		return "path"
	case KindCollection:
		return "collection"
	}
	return "unknown"
}

// ParameterSpec describes one parameter of a command or one
// scope-level field of an application or group struct. Specs are built
// once at tree-build time and never mutated afterwards.
type ParameterSpec struct {
	Name       string // display/flag name
	Field      string // Go field name
	Kind       Kind
	Type       reflect.Type
	HasDefault bool
	Default    string
	Help       string
	Choices    []string
	Positional bool
}

// IsBool reports whether the parameter is a boolean flag, which never
// consumes a value token.
func (p ParameterSpec) IsBool() bool {
	return p.Kind == KindPrimitive && p.Type.Kind() == reflect.Bool
}

// Required reports whether the parameter must be supplied by the user.
func (p ParameterSpec) Required() bool { return !p.HasDefault }

var (
	pathType     = reflect.TypeOf(Path(""))
	durationType = reflect.TypeOf(time.Duration(0))
	boolType     = reflect.TypeOf(false)
	stringType   = reflect.TypeOf("")
)

// classifyKind maps a field type to its Kind. The bool result is false
// for types the binder cannot coerce.
func classifyKind(t reflect.Type, hasChoices bool) (Kind, bool) {
	if t == pathType {
		return KindPath, !hasChoices
	}
	if t.Kind() == reflect.Slice {
		if t.Elem().Kind() == reflect.String && !hasChoices {
			return KindCollection, true
		}
		return 0, false
	}
	if hasChoices {
		return KindChoice, t.Kind() == reflect.String
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindPrimitive, true
	}
	return 0, false
}

// paramSpecs extracts the ordered parameter list from a struct type.
// Unexported fields are skipped. When requireDefaults is set (app and
// group structs, whose fields are constructor parameters) a field
// without a default tag is a configuration error.
func paramSpecs(t reflect.Type, requireDefaults bool) ([]ParameterSpec, error) {
	if t.Kind() != reflect.Struct {
		return nil, &ConfigError{Class: t.String(), Reason: "not a struct type"}
	}
	specs := make([]ParameterSpec, 0, t.NumField())
	seen := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = displayName(field.Name)
		}
		if prev, dup := seen[name]; dup {
			return nil, &ConfigError{
				Class:  t.Name(),
				Member: field.Name,
				Reason: fmt.Sprintf("flag name %q already used by field %s", name, prev),
			}
		}
		seen[name] = field.Name

		var choices []string
		if tag, ok := field.Tag.Lookup("choices"); ok {
			for _, c := range strings.Split(tag, ",") {
				if c = strings.TrimSpace(c); c != "" {
					choices = append(choices, c)
				}
			}
			if len(choices) == 0 {
				return nil, &ConfigError{Class: t.Name(), Member: field.Name, Reason: "empty choices tag"}
			}
		}

		kind, ok := classifyKind(field.Type, len(choices) > 0)
		if !ok {
			return nil, &ConfigError{
				Class:  t.Name(),
				Member: field.Name,
				Reason: fmt.Sprintf("unsupported parameter type %s", field.Type),
			}
		}

		def, hasDefault := field.Tag.Lookup("default")
		if requireDefaults && !hasDefault {
			return nil, &ConfigError{
				Class:  t.Name(),
				Member: field.Name,
				Reason: "constructor parameter has no default value",
			}
		}
		if hasDefault && kind == KindChoice && !containsString(choices, def) {
			return nil, &ConfigError{
				Class:  t.Name(),
				Member: field.Name,
				Reason: fmt.Sprintf("default %q is not one of the declared choices", def),
			}
		}

		specs = append(specs, ParameterSpec{
			Name:       name,
			Field:      field.Name,
			Kind:       kind,
			Type:       field.Type,
			HasDefault: hasDefault,
			Default:    def,
			Help:       field.Tag.Get("help"),
			Choices:    choices,
		})
	}
	return specs, nil
}

// methodSpec inspects a command method and extracts its parameter
// descriptor struct, if any. Allowed shapes are a receiver plus zero or
// one struct parameter, returning nothing, error, int, or (int, error).
func methodSpec(class reflect.Type, m reflect.Method) (argsType reflect.Type, params []ParameterSpec, err error) {
	mt := m.Type
	className := class.Name()

	switch mt.NumIn() {
	case 1:
		// Receiver only.
	case 2:
		argsType = mt.In(1)
		if argsType.Kind() != reflect.Struct {
			return nil, nil, &ConfigError{
				Class:  className,
				Member: m.Name,
				Reason: fmt.Sprintf("parameter must be a struct of command arguments, got %s", argsType),
			}
		}
	default:
		return nil, nil, &ConfigError{
			Class:  className,
			Member: m.Name,
			Reason: "command methods take at most one argument struct",
		}
	}

	if err := checkReturns(mt); err != nil {
		return nil, nil, &ConfigError{Class: className, Member: m.Name, Reason: err.Error()}
	}

	if argsType != nil {
		params, err = paramSpecs(argsType, false)
		if err != nil {
			var cfg *ConfigError
			if errors.As(err, &cfg) && cfg.Class == argsType.Name() {
				cfg.Reason = fmt.Sprintf("method %s: %s", m.Name, cfg.Reason)
			}
			return nil, nil, err
		}
	}
	return argsType, params, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func checkReturns(mt reflect.Type) error {
	switch mt.NumOut() {
	case 0:
		return nil
	case 1:
		if mt.Out(0) == errType || mt.Out(0).Kind() == reflect.Int {
			return nil
		}
	case 2:
		if mt.Out(0).Kind() == reflect.Int && mt.Out(1) == errType {
			return nil
		}
	}
	return fmt.Errorf("unsupported return signature; use none, error, int, or (int, error)")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
