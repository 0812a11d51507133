package debugctx

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type writerKey struct{}

// With enables debug tracing on the context: messages printed through
// Printf go to writer. Without it Printf is a no-op.
func With(ctx context.Context, writer io.Writer) context.Context {
	if writer == nil {
		return ctx
	}
	return context.WithValue(ctx, writerKey{}, writer)
}

func Enabled(ctx context.Context) bool {
	return writer(ctx) != nil
}

func Printf(ctx context.Context, format string, args ...any) {
	w := writer(ctx)
	if w == nil {
		return
	}

	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	if message == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "debug: %s\n", message)
}

func writer(ctx context.Context) io.Writer {
	if ctx == nil {
		return nil
	}
	w, _ := ctx.Value(writerKey{}).(io.Writer)
	return w
}
