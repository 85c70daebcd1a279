// Package toolchain runs the external tools the pipeline drives (pip,
// pyinstaller, the Python interpreter) behind a small Executor interface so
// services can be tested without spawning real processes.
package toolchain
