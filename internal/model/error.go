package model

import "errors"

var ErrorInvalidEmailOrPassword = errors.New("invalid email or password")
var ErrorUserNotFound = errors.New("user not found")
var ErrorEmailTaken = errors.New("email already registered")
var ErrorPasswordMismatch = errors.New("password confirmation does not match")
var ErrorEmptyMessage = errors.New("message body is empty")
var ErrorSelfMessage = errors.New("sender and receiver are the same account")
var ErrorSenderMismatch = errors.New("sender mismatch")
var ErrorSessionNotFound = errors.New("session not found")
