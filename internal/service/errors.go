package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrAuthenticationDisabled  = errors.New("authentication is disabled")

	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to different user data")

	ErrAttachmentStorageNotConfigured = errors.New("attachment storage is not configured")
)
