// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	ErrHTTPServe  = errors.New("HTTP server stopped unexpectedly")
	ErrGRPCListen = errors.New("cannot listen on gRPC address")
	ErrGRPCServe  = errors.New("gRPC server stopped unexpectedly")
)
