package mg2

import "github.com/arx-os/mg2container/internal/errors"

func fieldError(field, message string) error {
	return errors.Format("validate_mesh", message).WithContext("field", field)
}

func outOfMemory(operation, message string) error {
	return errors.OutOfMemory(operation, message)
}

func formatError(operation, message string) error {
	return errors.Format(operation, message)
}

func formatErrorWrap(err error, operation, message string) error {
	return errors.FormatWrap(err, operation, message)
}

func ioErrorWrap(err error, operation, message string) error {
	return errors.IOWrap(err, operation, message)
}
