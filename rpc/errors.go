// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errNoPeer = status.Error(codes.Unauthenticated, "no peer info")

func errIPNotAllowed(ip string) error {
	return status.Error(codes.PermissionDenied, fmt.Sprintf("the %s address is not authorized", ip))
}

func errFuncNotAllowed(funcName string) error {
	return status.Error(codes.PermissionDenied, fmt.Sprintf("the %s method is not authorized", funcName))
}

var (
	errBasicAuth   = errors.New("ErrBasicAuth")
	errRateLimit   = errors.New("ErrRateLimit")
	errJrpcRequest = errors.New("ErrJrpcRequest")
)
