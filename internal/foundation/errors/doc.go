// Package errors provides the classified error type used across repoprep.
//
// A ClassifiedError carries a category, a severity, a retry strategy and a
// structured context map. Errors are built through the fluent ErrorBuilder so
// that a value is only ever observed fully populated:
//
//	err := errors.NewError(errors.CategoryFileSystem, "local repository setup failed").
//		WithCause(cause).
//		WithContext("source_path", path).
//		Build()
//
// The CLIErrorAdapter maps classified errors to process exit codes and
// user-facing messages.
package errors
