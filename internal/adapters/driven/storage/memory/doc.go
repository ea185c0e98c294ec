// Package memory provides in-memory implementations of the driven ports.
// They back unit tests of the core services and hold no state on disk.
package memory
