// Package manifest describes the artifacts produced by a release: the
// release version plus a base64-encoded SHA-512 checksum per file. The
// deploy step verifies the frozen executable against it before applying.
package manifest
