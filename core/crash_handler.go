package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var crash struct {
	mu   sync.Mutex
	term Finalizer
	log  *zap.Logger
}

// SetCrashTarget registers the screen to restore and the logger to record a crash
func SetCrashTarget(term Finalizer, log *zap.Logger) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.term = term
	crash.log = log
}

// HandleCrash restores the terminal, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crash.mu.Lock()
	term, log := crash.term, crash.log
	crash.mu.Unlock()

	if term != nil {
		term.Fini()
	}
	if log != nil {
		log.Error("crash", zap.Any("panic", r), zap.Stack("stack"))
		_ = log.Sync()
	}

	// \r\n keeps the trace readable if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mMINETOWER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use it instead of the go keyword for loops that own the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
