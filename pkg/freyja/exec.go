// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Executor instantiates a command's class chain from an
// ExecutionContext and invokes the method. A fresh chain is built per
// invocation so commands never see state from earlier runs.
type Executor struct {
	Tree   *CommandTree
	Stdout io.Writer
	Stderr io.Writer
	Style  *Style
}

// Execute runs the context's command and returns its exit status. An
// error return always carries a status via *InvocationError; a non-nil
// error with status 0 does not occur.
func (e *Executor) Execute(ctx *ExecutionContext) (int, error) {
	cmd := ctx.Command
	if cmd == nil {
		return ExitFailure, invocationErr(nil, ExitFailure, fmt.Errorf("no command resolved"))
	}
	if cmd.run != nil {
		return cmd.run(e, ctx)
	}

	recv, err := e.instantiateChain(ctx)
	if err != nil {
		return ExitUsage, invocationErr(cmd.Path, ExitUsage, err)
	}

	method := recv.MethodByName(cmd.methodName)
	if !method.IsValid() {
		return ExitFailure, invocationErr(cmd.Path, ExitFailure, fmt.Errorf("method %s not found", cmd.methodName))
	}

	var args []reflect.Value
	if cmd.argsType != nil {
		av := reflect.New(cmd.argsType).Elem()
		if err := populateStruct(av, cmd.Params, ctx.CommandFlags, ctx.Collections, pathKey(cmd.Path)); err != nil {
			return ExitUsage, invocationErr(cmd.Path, ExitUsage, err)
		}
		args = append(args, av)
	}

	return interpretReturns(cmd, method.Call(args))
}

// instantiateChain builds the command's ownership chain outermost
// first, populating each level from its scope's values, and returns the
// innermost instance as the method receiver.
func (e *Executor) instantiateChain(ctx *ExecutionContext) (reflect.Value, error) {
	cmd := ctx.Command
	var recv reflect.Value
	for _, lvl := range cmd.chain {
		v := reflect.New(lvl.typ)
		specs, vals, key := e.scopeFor(ctx, lvl)
		if err := populateStruct(v.Elem(), specs, vals, ctx.Collections, key); err != nil {
			return reflect.Value{}, err
		}
		recv = v
	}
	return recv, nil
}

func (e *Executor) scopeFor(ctx *ExecutionContext, lvl chainLevel) ([]ParameterSpec, map[string]string, string) {
	if len(lvl.path) == 0 {
		return e.Tree.Globals, ctx.Globals, ""
	}
	key := pathKey(lvl.path)
	var specs []ParameterSpec
	if g := e.Tree.groupAt(lvl.path); g != nil {
		specs = g.Params
	}
	return specs, ctx.SubGlobals[key], key
}

func interpretReturns(cmd *CommandInfo, out []reflect.Value) (int, error) {
	code := ExitSuccess
	var err error
	for _, rv := range out {
		switch {
		case rv.Kind() == reflect.Int:
			code = int(rv.Int())
		case rv.Type() == errType:
			if !rv.IsNil() {
				err = rv.Interface().(error)
			}
		}
	}
	if err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code, nil
		}
		if code == ExitSuccess {
			code = ExitFailure
		}
		return code, invocationErr(cmd.Path, code, err)
	}
	return code, nil
}

// populateStruct writes one scope's raw values into the target struct.
// Every parameter either has an entry in vals or was already reported
// missing; absent entries are left at the zero value.
func populateStruct(sv reflect.Value, specs []ParameterSpec, vals map[string]string, colls map[string][]string, scopeKey string) error {
	for _, p := range specs {
		field := sv.FieldByName(p.Field)
		if !field.IsValid() {
			return fmt.Errorf("no field %s for --%s", p.Field, p.Name)
		}
		if p.Kind == KindCollection {
			items, ok := colls[collectionKey(scopeKey, p.Name)]
			if !ok && p.HasDefault {
				items = splitDefaultList(p.Default)
			}
			field.Set(reflect.ValueOf(items).Convert(p.Type))
			continue
		}
		raw, ok := vals[p.Name]
		if !ok {
			continue
		}
		if err := setField(field, p, raw); err != nil {
			return err
		}
	}
	return nil
}

// setField coerces one raw string into a struct field. The error names
// the flag so the caller can report it verbatim.
func setField(field reflect.Value, p ParameterSpec, raw string) error {
	badValue := func(want string) error {
		return fmt.Errorf("invalid value %q for --%s: expected %s", raw, p.Name, want)
	}
	switch p.Kind {
	case KindPath:
		field.Set(reflect.ValueOf(Path(expandPath(raw))).Convert(p.Type))
		return nil
	case KindChoice:
		field.SetString(raw)
		return nil
	}
	switch p.Type.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return badValue("true or false")
		}
		field.SetBool(b)
	case reflect.Int64:
		if p.Type == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return badValue("a duration such as 30s or 5m")
			}
			field.SetInt(int64(d))
			return nil
		}
		fallthrough
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		n, err := strconv.ParseInt(raw, 10, p.Type.Bits())
		if err != nil {
			return badValue("an integer")
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, p.Type.Bits())
		if err != nil {
			return badValue("a non-negative integer")
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, p.Type.Bits())
		if err != nil {
			return badValue("a number")
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("cannot bind --%s of type %s", p.Name, p.Type)
	}
	return nil
}

// expandPath resolves a leading "~" against the user's home directory
// and cleans the result.
func expandPath(raw string) string {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			raw = filepath.Join(home, raw[1:])
		}
	}
	return filepath.Clean(raw)
}

func splitDefaultList(def string) []string {
	if def == "" {
		return nil
	}
	parts := strings.Split(def, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
