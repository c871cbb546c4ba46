// Package transport contains descriptions of all the
// operations exposed by a mapkeeper server and different
// implementations of clients and servers for different
// protocols. Some clients prefer gRPC and others plain
// JSON over HTTP. Adding a transport should not require
// touching the service itself.
package transport
