// Package hooks runs operator-supplied JavaScript that customizes the emoji
// document before the catalog is built.
//
// A hook script defines a global function:
//
//	function loadEmojis(context, json) {
//	    json.custom = json.custom || {};
//	    json.custom[":my_emoji:"] = {sn: ":my_emoji:", url: "https://example.com/my_emoji.png", c: "custom"};
//	    delete json.custom[":converse:"];
//	    return json;
//	}
//
// Returning undefined or null keeps the document unchanged.
package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dop251/goja"

	"github.com/m96-chan/emojikit/internal/emoji"
)

// DefaultTimeout bounds a single hook invocation.
const DefaultTimeout = 10 * time.Second

const entryPoint = "loadEmojis"

// Script is a compiled JavaScript hook. It implements emoji.Hook.
type Script struct {
	name    string
	program *goja.Program
	timeout time.Duration
}

// Compile parses src and returns a Script. Syntax errors are reported here
// rather than at load time.
func Compile(name, src string, timeout time.Duration) (*Script, error) {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, fmt.Errorf("compiling hook %s: %w", name, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Script{name: name, program: prog, timeout: timeout}, nil
}

// LoadFiles compiles every script in paths, in order.
func LoadFiles(paths []string, timeout time.Duration) ([]emoji.Hook, error) {
	hooks := make([]emoji.Hook, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading hook: %w", err)
		}
		s, err := Compile(filepath.Base(p), string(src), timeout)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, s)
	}
	return hooks, nil
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

type callResult struct {
	out string
	set bool // false when the hook returned undefined or null
	err error
}

// LoadEmojis implements emoji.Hook. Each call runs in a fresh VM.
func (s *Script) LoadEmojis(ctx context.Context, doc emoji.Document) (emoji.Document, error) {
	in, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("hook %s: encoding document: %w", s.name, err)
	}

	vm := goja.New()
	s.installConsole(vm)

	done := make(chan callResult, 1)
	go func() {
		done <- s.call(vm, string(in))
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	var res callResult
	select {
	case res = <-done:
	case <-ctx.Done():
		vm.Interrupt("cancelled")
		<-done
		return nil, fmt.Errorf("hook %s: %w", s.name, ctx.Err())
	case <-timer.C:
		vm.Interrupt("timeout")
		<-done
		return nil, fmt.Errorf("hook %s timed out after %s", s.name, s.timeout)
	}

	if res.err != nil {
		return nil, fmt.Errorf("hook %s: %w", s.name, res.err)
	}
	if !res.set {
		return nil, nil
	}
	out, err := emoji.DecodeDocument([]byte(res.out))
	if err != nil {
		return nil, fmt.Errorf("hook %s returned %w", s.name, err)
	}
	return out, nil
}

// call runs the program and invokes the entry point with a JS copy of the
// document. The result is serialized back with JSON.stringify.
func (s *Script) call(vm *goja.Runtime, in string) (res callResult) {
	defer func() {
		if r := recover(); r != nil {
			res = callResult{err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if _, err := vm.RunProgram(s.program); err != nil {
		return callResult{err: err}
	}
	fn, ok := goja.AssertFunction(vm.Get(entryPoint))
	if !ok {
		return callResult{err: fmt.Errorf("script does not define %s(context, json)", entryPoint)}
	}

	codec, err := vm.RunString(`({
		parse: function (s) { return JSON.parse(s); },
		stringify: function (v) { return JSON.stringify(v); }
	})`)
	if err != nil {
		return callResult{err: err}
	}
	obj := codec.ToObject(vm)
	parse, _ := goja.AssertFunction(obj.Get("parse"))
	stringify, _ := goja.AssertFunction(obj.Get("stringify"))

	arg, err := parse(goja.Undefined(), vm.ToValue(in))
	if err != nil {
		return callResult{err: err}
	}
	ret, err := fn(goja.Undefined(), vm.NewObject(), arg)
	if err != nil {
		return callResult{err: err}
	}
	if goja.IsUndefined(ret) || goja.IsNull(ret) {
		return callResult{}
	}

	str, err := stringify(goja.Undefined(), ret)
	if err != nil {
		return callResult{err: err}
	}
	if goja.IsUndefined(str) {
		return callResult{err: fmt.Errorf("%s returned a value that is not JSON", entryPoint)}
	}
	return callResult{out: str.String(), set: true}
}

// installConsole exposes console.log/warn to scripts, routed to slog.
func (s *Script) installConsole(vm *goja.Runtime) {
	console := vm.NewObject()
	logAt := func(level slog.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = a.Export()
			}
			slog.Log(context.Background(), level, "emoji hook", "script", s.name, "msg", fmt.Sprint(args...))
			return goja.Undefined()
		}
	}
	_ = console.Set("log", logAt(slog.LevelInfo))
	_ = console.Set("warn", logAt(slog.LevelWarn))
	_ = console.Set("error", logAt(slog.LevelError))
	_ = vm.Set("console", console)
}
