// Package server provides the HTTP surface of the archiver: the archive
// invocation endpoint, liveness and readiness probes, and a dedicated
// Prometheus metrics server.
package server
