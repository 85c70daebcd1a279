// Package pipeline executes an ordered list of named steps with fail-fast
// semantics: the first failing step aborts the run and its error, annotated
// with the step name, becomes the pipeline's result.
//
// It also guards against two releases mutating the same environment at once
// via a marker file with stale-marker recovery.
package pipeline
