// Package playground evaluates user-submitted JavaScript in an isolated
// per-call VM and captures console output. Only JavaScript executes; other
// languages degrade to a "not supported" message.
package playground

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
)

const (
	LanguageJavaScript = "javascript"

	defaultRunTimeout = 2 * time.Second
)

// Sandbox runs snippets. Each Run builds a fresh VM and a fresh output sink,
// so concurrent calls never share interpreter or capture state.
type Sandbox struct {
	timeout time.Duration
}

func New() *Sandbox { return &Sandbox{timeout: defaultRunTimeout} }

func NewWithTimeout(timeout time.Duration) *Sandbox {
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	return &Sandbox{timeout: timeout}
}

// Run evaluates source and returns the captured output. On a thrown error the
// output is replaced with "Error: <message>"; the log captured up to the
// failure point is discarded.
func (s *Sandbox) Run(ctx context.Context, language, source string) string {
	if language != LanguageJavaScript {
		return fmt.Sprintf("Running %s code is not supported.\nServer-side execution would be required.", language)
	}

	sink := &consoleSink{}
	vm := goja.New()
	bindConsole(vm, sink)

	timer := time.AfterFunc(s.timeout, func() { vm.Interrupt("execution timed out") })
	defer timer.Stop()
	if done := ctx.Done(); done != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-done:
				vm.Interrupt("execution canceled")
			case <-stop:
			}
		}()
	}

	value, err := vm.RunString(source)
	if err != nil {
		return "Error: " + errorMessage(err)
	}
	if value != nil && !goja.IsUndefined(value) {
		sink.append("Return value: " + formatValue(value))
	}
	return sink.String()
}

// consoleSink is the per-call capture channel for console output. It is
// created for one evaluation and thrown away with it; nothing global is
// redirected.
type consoleSink struct {
	lines []string
}

func (c *consoleSink) append(line string) { c.lines = append(c.lines, line) }

func (c *consoleSink) String() string { return strings.Join(c.lines, "\n") }

func bindConsole(vm *goja.Runtime, sink *consoleSink) {
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, formatValue(arg))
		}
		sink.append(strings.Join(parts, " "))
		return goja.Undefined()
	}
	_ = console.Set("log", logFn)
	_ = console.Set("info", logFn)
	_ = console.Set("warn", logFn)
	_ = console.Set("error", logFn)
	_ = vm.Set("console", console)
}

func formatValue(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	switch exported := v.Export().(type) {
	case map[string]interface{}, []interface{}:
		if b, err := json.MarshalIndent(exported, "", "  "); err == nil {
			return string(b)
		}
	}
	return v.String()
}

func errorMessage(err error) string {
	var exc *goja.Exception
	if ok := asException(err, &exc); ok {
		if obj, isObj := exc.Value().(*goja.Object); isObj {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return msg.String()
			}
		}
		return exc.Value().String()
	}
	return err.Error()
}

func asException(err error, target **goja.Exception) bool {
	if exc, ok := err.(*goja.Exception); ok {
		*target = exc
		return true
	}
	return false
}
