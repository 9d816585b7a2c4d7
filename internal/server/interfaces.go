package server

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until a termination signal arrives and the server has
// shut down.
type Server interface {
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
