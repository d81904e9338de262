package service

import "errors"

// Lookup and conflict failures returned by State actions. Callers match them with errors.Is.
var (
	ErrUsernameTaken   = errors.New("username already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrChildNotFound   = errors.New("child not found")
	ErrViewUnavailable = errors.New("view not available for this user")
	ErrNoCurrentUser   = errors.New("no active user")
)
