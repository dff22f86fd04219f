// Package goroutine launches goroutines that cannot crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/aticket/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic is recovered and logged with
// its stack trace.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Run(log, name, fn)
}

// Run is the synchronous body of SafeGo.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
