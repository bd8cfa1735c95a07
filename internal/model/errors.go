package model

import "errors"

var (
	ErrNotFound      = errors.New("content not found")
	ErrWrongPassword = errors.New("wrong password")
)
