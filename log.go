package stampboard

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	errorLogger = log.New(os.Stderr, "[stampboard] ", log.LstdFlags)
	debugLogger *log.Logger

	// globalDebug mirrors the most recent SetDebug call so that node
	// operations, which have no Board pointer, can check it cheaply.
	globalDebug bool
)

// SetLogOutput redirects board logging. Debug output, when enabled, goes to
// the same writer.
func SetLogOutput(w io.Writer) {
	errorLogger.SetOutput(w)
	if debugLogger != nil {
		debugLogger.SetOutput(w)
	}
}

// SetDebug enables or disables debug logging and disposed-node checks.
func SetDebug(enabled bool) {
	globalDebug = enabled
	if enabled {
		debugLogger = log.New(errorLogger.Writer(), "[stampboard] debug: ", log.LstdFlags|log.Lmicroseconds)
	} else {
		debugLogger = nil
	}
}

func logError(format string, v ...any) {
	errorLogger.Printf(format, v...)
}

func logDebug(format string, v ...any) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

// debugCheckDisposed panics when a disposed node is used in a tree operation.
// Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("stampboard debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}
