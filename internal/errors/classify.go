package errors

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
)

// Category groups errors by who can act on them.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser is bad input the user can correct and retry.
	CategoryUser
	// CategoryStorage is a failure reading or writing the data directory.
	CategoryStorage
	// CategoryProvider is a failure talking to the AI coach's model provider.
	CategoryProvider
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategoryStorage:
		return "storage"
	case CategoryProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsUserError(err):
		return CategoryUser
	case isProvider(err):
		return CategoryProvider
	case IsSystemError(err), isStorage(err):
		return CategoryStorage
	}
	return CategoryUnknown
}

func isStorage(err error) bool {
	if errors.Is(err, ErrDiskFull) ||
		errors.Is(err, ErrStorageCorrupted) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, fs.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.EIO, syscall.EROFS:
			return true
		}
	}
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

func isProvider(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrNetworkUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ETIMEDOUT, syscall.ECONNREFUSED, syscall.ECONNRESET:
			return true
		}
	}
	return false
}

// FormatByCategory returns a user-appropriate error message based on category.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	suggestion := GetSuggestion(err)

	switch Classify(err) {
	case CategoryUser:
		if suggestion != "" {
			return msg + "\n\nTry: " + suggestion
		}
		return msg

	case CategoryStorage:
		if suggestion != "" {
			return "Storage error: " + msg + "\n\n" + suggestion
		}
		return "Storage error: " + msg

	case CategoryProvider:
		if suggestion != "" {
			return "Coach unavailable: " + msg + "\n\n" + suggestion
		}
		return "Coach unavailable: " + msg

	default:
		if suggestion != "" {
			return msg + "\n\n" + suggestion
		}
		return msg
	}
}
