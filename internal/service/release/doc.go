// Package release drives the packaging pipeline: it removes the previously
// installed distribution, freezes the entry point into a standalone
// executable, builds the sdist and wheel archives, writes a checksum
// manifest, installs the fresh wheel and verifies the result.
//
// Steps run in a fixed order and the first failure aborts the run.
package release
