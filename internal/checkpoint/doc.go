// Package checkpoint records a baseline commit in a working directory.
//
// Checkpointing is best-effort. Manager.Checkpoint never returns an error:
// every failure is logged as a warning and collected in the returned Report,
// and the caller decides what, if anything, to do with it.
//
// Two backends talk to git:
//   - ExecBackend runs the git command-line tool.
//   - GoGitBackend uses go-git in process and needs no external binary.
package checkpoint
