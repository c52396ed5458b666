package kernel

import (
	"errors"
	"sync"
	"sync/atomic"

	goerrors "github.com/go-errors/errors"
)

// FatalInfo describes an unrecoverable error.
type FatalInfo struct {
	Err   error
	Stack []byte
}

var (
	fatalActive atomic.Bool
	fatalOnce   sync.Once

	fatalHandler atomic.Value // func(FatalInfo)

	// halt parks the caller forever. Replaced in tests.
	halt = func() { select {} }
)

// InFatalMode reports whether Fatal has been called.
func InFatalMode() bool {
	return fatalActive.Load()
}

// SetFatalHandler installs a process-wide fatal handler.
//
// The handler is invoked at most once (on the first fatal error). It must not panic.
func SetFatalHandler(fn func(FatalInfo)) {
	fatalHandler.Store(fn)
}

// Fatal reports err to the fatal handler and halts the calling goroutine.
// It never returns.
func Fatal(err error) {
	triggerFatal(err)
	halt()
}

func triggerFatal(err error) {
	fatalOnce.Do(func() {
		fatalActive.Store(true)
		info := FatalInfo{Err: err}
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			info.Stack = ge.Stack()
		} else {
			info.Stack = captureStack()
		}
		if v := fatalHandler.Load(); v != nil {
			if fn, ok := v.(func(FatalInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
