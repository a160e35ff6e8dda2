// Package selection turns the viewer's "pick a profile" flow into explicit
// state with a deterministic concurrency rule. Every selection request gets a
// monotonically increasing sequence number; an asynchronous load that
// finishes after a newer request has started is discarded silently, so the
// most recently requested profile always wins. The current selection is
// persisted through a small key-value Store collaborator.
package selection
