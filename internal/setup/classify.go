package setup

import (
	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
)

// SetupFailedMessage is the message of every classified provisioning failure.
const SetupFailedMessage = "local repository setup failed"

// Context keys attached to classified provisioning failures.
const (
	ContextSourcePath      = "source_path"
	ContextUnderlyingError = "underlying_error"
)

// Classify converts a provisioning fault into the typed setup failure.
// A ClassifiedError already present in the chain is returned unchanged.
func Classify(sourcePath string, err error) *ferrors.ClassifiedError {
	if err == nil {
		return nil
	}
	if classified, ok := ferrors.AsClassified(err); ok {
		return classified
	}
	return ferrors.FileSystemError(SetupFailedMessage).
		WithCause(err).
		WithContext(ContextSourcePath, sourcePath).
		WithContext(ContextUnderlyingError, err.Error()).
		Build()
}
