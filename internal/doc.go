// Package internal contains private implementation details for the OSS module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - signer: request authentication (header signatures and presigned query parameters)
//   - validation: input validation logic
package internal
