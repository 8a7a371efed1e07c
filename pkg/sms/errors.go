package sms

import "errors"

var (
	ErrFailedToSend  = errors.New("sms: failed to send")
	ErrInvalidConfig = errors.New("sms: invalid config")
	ErrInvalidParams = errors.New("sms: invalid send params")
)
