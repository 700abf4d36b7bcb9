// Package httpserver constructs the listening server for cmd/server.
package httpserver

import (
	"net/http"
	"time"
)

const (
	headerTimeout  = 5 * time.Second
	bodyTimeout    = 15 * time.Second
	idleTimeout    = 60 * time.Second
	maxHeaderBytes = 64 << 10
)

// New returns a server whose write deadline covers two collaborator calls
// (database and notifier) plus encoding slack.
func New(addr string, handler http.Handler, collaboratorTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: headerTimeout,
		ReadTimeout:       bodyTimeout,
		WriteTimeout:      2*collaboratorTimeout + 10*time.Second,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}
