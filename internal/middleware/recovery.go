package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/asiaagro/silage-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a logged 500 response so one
// bad request cannot take the whole server down.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
