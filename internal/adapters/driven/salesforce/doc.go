// Package salesforce implements the remote collaborator port over the
// Salesforce REST API.
//
// Authentication uses the OAuth 2.0 JWT bearer flow (connected app
// consumer key + RSA private key + username). Listing queries go
// through the SOQL query endpoint with nextRecordsUrl pagination;
// binary bodies stream from the VersionData / Body sub-resources;
// quota readings come from the limits endpoint.
//
// The client owns transport concerns: request timeouts and retries on
// 429 and 5xx responses. The engine above it never retries.
package salesforce
