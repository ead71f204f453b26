package grpc

import "errors"

var errPanic = errors.New("panic while serving call")
