package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfRecognition   = errors.New("cannot recognize yourself")
	ErrEmptyMessage      = errors.New("message must not be empty")
)
