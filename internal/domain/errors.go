package domain

import "errors"

var (
	// ErrPostNotFound signals a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrTagExists signals a duplicate tag.
	ErrTagExists = errors.New("tag already exists")
	// ErrInvalidInput signals a malformed or incomplete request payload.
	ErrInvalidInput = errors.New("invalid input")
)

// KeyPrefix namespaces every document key and index owned by this service.
const KeyPrefix = "ripple:"
