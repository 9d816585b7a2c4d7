// Package server runs the strobe HTTP server.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown.
package server
