package errors

import "fmt"

// ExitCodeFor determines the appropriate process exit code for an error.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if se, ok := AsScrubError(err); ok {
		switch se.Category {
		case CategoryValidation:
			return 2 // Invalid usage
		case CategoryConfig:
			return 7 // Configuration error
		case CategoryFileSystem, CategoryMarkdown:
			return 11 // Processing error
		case CategoryRuntime:
			return 12 // Runtime error
		case CategoryInternal:
			return 10 // Internal error
		default:
			return 1
		}
	}

	return 1
}

// FormatError formats an error for user-facing display. Configuration and
// validation errors are shown without their category prefix; everything else
// keeps the classification so bug reports carry it.
func FormatError(err error, verbose bool) string {
	if err == nil {
		return ""
	}

	se, ok := AsScrubError(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if verbose {
		return se.Error()
	}

	switch se.Category {
	case CategoryConfig, CategoryValidation:
		return se.Message
	default:
		return fmt.Sprintf("%s: %s", se.Category, se.Message)
	}
}
