package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a database or service error.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Matches both the postgres wording ("duplicate key value violates unique
// constraint") and the sqlite wording used by the test database ("UNIQUE
// constraint failed"), plus gorm's translated sentinel.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// ParseError converts a raw error into a code and a user-facing message.
// context is a short hint like "canteen" or "favorite" used to pick the
// message when the error itself is generic.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	if IsDuplicateKey(err) {
		errLower := strings.ToLower(err.Error())
		if strings.Contains(errLower, "favorites") || strings.Contains(context, "favorite") {
			return ErrorInfo{Code: FavoriteAlreadyExists, Message: "Already marked as favorite"}
		}
		if strings.Contains(errLower, "email") {
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already in use"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
	}

	errLower := strings.ToLower(err.Error())

	if strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	if strings.Contains(errLower, "check constraint") {
		if strings.Contains(errLower, "rating") {
			return ErrorInfo{Code: ReviewInvalidRating, Message: "Rating must be between 1 and 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Invalid input"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage is temporarily unavailable, please retry"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "canteen"):
		return "Canteen not found"
	case strings.Contains(context, "menu"):
		return "Menu item not found"
	case strings.Contains(context, "review"):
		return "Review not found"
	case strings.Contains(context, "favorite"):
		return "Favorite not found"
	case strings.Contains(context, "user"):
		return "User not found"
	}
	return "The requested record was not found"
}
