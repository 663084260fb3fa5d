package middleware

import (
	"net/http"
	"time"
)

// ExtendDeadline pushes the connection's read and write deadlines d into the
// future for handlers that legitimately outlive the server-wide timeouts.
// The AI endpoints hold the connection for the whole upstream retry budget,
// which spans minutes, while the global write timeout stays tight for every
// other route.
func ExtendDeadline(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d > 0 {
				// Recorders and exotic writers may not support deadlines;
				// the request proceeds either way.
				rc := http.NewResponseController(w)
				deadline := time.Now().Add(d)
				_ = rc.SetWriteDeadline(deadline)
				_ = rc.SetReadDeadline(deadline)
			}
			next.ServeHTTP(w, r)
		})
	}
}
