package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrPostNotFound = errors.New("post not found")

// ErrDuplicateUsername and ErrDuplicateEmail are returned by the user store
// when an insert hits one of the unique constraints.
var ErrDuplicateUsername = errors.New("username already taken")
var ErrDuplicateEmail = errors.New("email already taken")

var ErrUnauthenticated = errors.New("not authenticated")
