package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUsernameUnavailable    = errors.New("chosen username is unavailable")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUnknownUser            = errors.New("user does not exist")
	ErrTemporarilyUnavailable = errors.New("service temporarily unavailable")
	ErrInternal               = errors.New("internal error")
)
