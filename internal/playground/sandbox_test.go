package playground_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/playground"
)

func TestRunCapturesConsoleOutput(t *testing.T) {
	sb := playground.New()
	out := sb.Run(context.Background(), playground.LanguageJavaScript,
		`console.log("Hello,", "world!"); console.log(40 + 2);`)
	want := "Hello, world!\n42"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestRunAppendsReturnValue(t *testing.T) {
	sb := playground.New()
	out := sb.Run(context.Background(), playground.LanguageJavaScript,
		`console.log("computing"); 6 * 7`)
	if out != "computing\nReturn value: 42" {
		t.Fatalf("unexpected output: %q", out)
	}

	// No return line for undefined results.
	out = sb.Run(context.Background(), playground.LanguageJavaScript, `var x = 1;`)
	if strings.Contains(out, "Return value") {
		t.Fatalf("undefined result must not append a return line: %q", out)
	}
}

func TestRunErrorReplacesOutput(t *testing.T) {
	sb := playground.New()
	out := sb.Run(context.Background(), playground.LanguageJavaScript,
		`console.log("before"); throw new Error("boom");`)
	if out != "Error: boom" {
		t.Fatalf("error must replace captured output, got %q", out)
	}
}

func TestRunUnsupportedLanguage(t *testing.T) {
	sb := playground.New()
	out := sb.Run(context.Background(), "python", `print("hi")`)
	if !strings.Contains(out, "python code is not supported") {
		t.Fatalf("expected not-supported message, got %q", out)
	}
}

func TestRunFormatsObjects(t *testing.T) {
	sb := playground.New()
	out := sb.Run(context.Background(), playground.LanguageJavaScript,
		`console.log({name: "go"});`)
	if !strings.Contains(out, `"name": "go"`) {
		t.Fatalf("objects must be JSON formatted, got %q", out)
	}
}

func TestRunInterruptsInfiniteLoop(t *testing.T) {
	sb := playground.NewWithTimeout(50 * time.Millisecond)
	done := make(chan string, 1)
	go func() {
		done <- sb.Run(context.Background(), playground.LanguageJavaScript, `while (true) {}`)
	}()
	select {
	case out := <-done:
		if !strings.HasPrefix(out, "Error:") {
			t.Fatalf("interrupted run must report an error, got %q", out)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("sandbox did not interrupt the loop")
	}
}

func TestRunIsReentrant(t *testing.T) {
	// Concurrent runs must not share capture state.
	sb := playground.New()
	var wg sync.WaitGroup
	outs := make([]string, 8)
	for i := range outs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			src := `console.log("run ` + string(rune('a'+n)) + `");`
			outs[n] = sb.Run(context.Background(), playground.LanguageJavaScript, src)
		}(i)
	}
	wg.Wait()
	for i, out := range outs {
		want := "run " + string(rune('a'+i))
		if out != want {
			t.Fatalf("run %d leaked output: %q", i, out)
		}
	}
}
