package service

import "errors"

// Domain errors surfaced to handlers. Each maps to a distinct HTTP status;
// anything else from this package is a storage failure (500).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrNotRecipient    = errors.New("only the recipient may act on this request")
	ErrSelfRequest     = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends  = errors.New("already friends")
	ErrRequestExists   = errors.New("friend request already exists")
	ErrAlreadyHandled  = errors.New("friend request already handled")

	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
