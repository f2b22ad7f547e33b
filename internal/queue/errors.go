package queue

import "errors"

var (
	ErrDisabled = errors.New("queue is disabled")
	ErrPublish  = errors.New("failed to publish event")
)
