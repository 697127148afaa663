// Package workspace provides writable working directories for setup runs.
//
// A writable source directory is used in place. An unwritable one is copied
// into a uniquely named directory (e.g. repos/workspace-123456789) under an
// explicitly configured scratch root; entries already present at the
// destination are left untouched.
//
// Copies of the same source can be serialized with an advisory flock(2) lock
// kept under <scratch root>/.locks. The lock does not deduplicate: every
// invocation still receives its own copy.
package workspace
