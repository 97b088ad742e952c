package nats

import "errors"

var errNoExecutor = errors.New("nats: server executor is required")
