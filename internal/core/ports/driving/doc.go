// Package driving defines the operations the archive engine exposes
// to its callers (the CLI) and the report types they receive.
package driving
