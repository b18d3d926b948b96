package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a panic into the generic JSON failure envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("panic recovered: request_id=%s method=%s path=%s panic=%v\n%s",
					GetRequestID(r.Context()), r.Method, r.URL.Path, rec, debug.Stack())
				writeError(w, http.StatusInternalServerError, "Internal server error", "Something went wrong")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
