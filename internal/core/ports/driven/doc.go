// Package driven defines the interfaces the archive engine consumes:
// the Salesforce client, the metadata snapshot store and the progress
// ledgers. Adapters under internal/adapters/driven implement them.
package driven
