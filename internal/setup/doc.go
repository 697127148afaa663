// Package setup prepares a local repository for an agent run.
//
// Service.Setup resolves the source path, obtains a writable working
// directory (in place or as an isolated copy) and records a best-effort
// baseline checkpoint in it. Provisioning faults are the only failures
// surfaced to callers, always as a single filesystem-category
// ClassifiedError produced by Classify.
package setup
