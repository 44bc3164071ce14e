package middleware_test

import "net/http"

// okHandler is the innermost handler for middleware tests that only care
// about what the middleware itself does.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})
