// Package registry implements the registry profile expander.
//
// A raw registry document describes a controller layout in the condensed form
// authored in the profiles registry: per-handedness component maps where
// gamepad indices may be left implicit when a standard mapping applies. The
// expander validates each document (schema first, then the invariants the
// schema cannot express), resolves every component's data-source indices,
// and stores the result as a fully self-describing profile. After expansion,
// no further lookup into the source document is needed to answer "what
// drives this component".
//
// Expansion is deterministic: no randomness, no clock, and the index
// assignment convention depends only on component types and their
// declaration order in the source document.
package registry
