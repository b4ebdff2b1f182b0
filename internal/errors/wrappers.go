package errors

import "fmt"

// Common error construction patterns used throughout the codebase

// NotFoundError marks a scan root path that does not exist
type NotFoundError struct {
	*BaseError
	Path string // path that was not found
}

// NewNotFoundError creates an error for a missing scan root
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{
		BaseError: Newf(NotFoundErrorCode, "scan root '%s' does not exist", path).
			WithSuggestion("Check the directory path passed to the scanner"),
		Path: path,
	}
}

// RouterConfigurationError marks a candidate type whose declared route
// metadata could not be extracted or is structurally invalid
type RouterConfigurationError struct {
	*BaseError
	TypeName string // qualified name of the offending type
}

// NewRouterConfigurationError creates a configuration error for a candidate type
func NewRouterConfigurationError(typeName, reason string) *RouterConfigurationError {
	return &RouterConfigurationError{
		BaseError: Newf(RouterConfigurationErrorCode, "invalid route configuration on %s: %s", typeName, reason),
		TypeName:  typeName,
	}
}

// WrapRouterConfigurationError wraps an underlying extraction failure
func WrapRouterConfigurationError(typeName string, cause error) *RouterConfigurationError {
	err := NewRouterConfigurationError(typeName, cause.Error())
	err.WithCause(cause)
	return err
}

// ValidationError marks a declared pattern or method set that is
// structurally invalid
type ValidationError struct {
	*BaseError
	Field string // declaration field that failed validation
}

// NewValidationError creates a validation error for a declaration field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		BaseError: Newf(ValidationErrorCode, "invalid %s: %s", field, reason),
		Field:     field,
	}
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s '%s'", operation, path), cause)
}
