// Package services implements the archive engine: the metadata index,
// task resolution, the API usage governor, the bounded task executor
// and the orchestrator composing them into the Download and Validate
// operations.
package services
