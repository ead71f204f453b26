package http

import (
	"fmt"
	"net/http"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// withRecover turns a panic in a handler into an internal error problem.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			appErr := apperrors.Internal(fmt.Errorf("%w: %v", errPanic, rec))
			appErr.Location = panicLocation()

			logger.FromContextOr(r.Context(), h.logger).Error().
				Str("stack", string(debug.Stack())).
				Msg("recovered from panic")

			h.writeProblem(w, r, appErr)
		}()

		next.ServeHTTP(w, r)
	})
}

// panicLocation returns "file:line func" of the frame that panicked. It
// must be called from the deferred recover function.
func panicLocation() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return shortFile(frame.File) + ":" + strconv.Itoa(frame.Line) + " " + frame.Function
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			return "unknown"
		}
	}
}

func shortFile(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
