package testrun

import "github.com/newmesstuff/go-polarion/faults"

func configurationError(message string, cause error) error {
	return faults.NewTypedError(faults.ConfigurationError, message, cause)
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func unresolvedStateError(message string, cause error) error {
	return faults.NewTypedError(faults.UnresolvedStateError, message, cause)
}

func attachmentNotFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.AttachmentNotFoundError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
