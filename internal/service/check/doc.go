// Package check runs the project's configured check commands (test suites,
// linters) either standalone or as a release preflight.
package check
