// Package bump increments the project version in the pipeline settings —
// the single source of truth every artifact filename derives from.
package bump
