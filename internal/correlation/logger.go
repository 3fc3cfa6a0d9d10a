package correlation

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// Logger prefixes each line with the correlation id found in the context
// passed to it. It holds no per-request state and is safe for concurrent use.
type Logger struct {
	l *log.Logger
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

// DefaultLogger writes to stderr.
func DefaultLogger() *Logger {
	return NewLogger(os.Stderr)
}

func (lg *Logger) Printf(ctx context.Context, format string, args ...any) {
	lg.l.Printf("%s=%s %s", Header, FromContext(ctx), fmt.Sprintf(format, args...))
}
