package domain

import "errors"

var ErrUnauthorized = errors.New("authorization rejected")
var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("resource not found")
var ErrLoginRequired = errors.New("login required")
var ErrEmptyContent = errors.New("content must not be empty")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
