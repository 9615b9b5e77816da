// Package memory provides in-memory implementations of the storage
// ports. They back unit tests and dry runs; production runs use the
// csvfile adapters.
package memory
