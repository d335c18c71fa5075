// Package validation provides centralized input validation logic.
// This includes bucket name validation, region validation, and object
// path checks.
//
// All identity values are validated at construction time so that a
// malformed value can never reach the signer or the wire.
package validation
