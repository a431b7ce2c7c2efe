// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"github.com/pingcap/errors"
)

// errors
var (
	// actor system related errors
	ErrActorSystemClosed = errors.Normalize(
		"actor system %s is closed",
		errors.RFCCodeText("TickActor:ErrActorSystemClosed"),
	)

	// config related errors
	ErrInvalidSystemConfig = errors.Normalize(
		"invalid system config: %s",
		errors.RFCCodeText("TickActor:ErrInvalidSystemConfig"),
	)
	ErrInvalidDemoConfig = errors.Normalize(
		"invalid demo config: %s",
		errors.RFCCodeText("TickActor:ErrInvalidDemoConfig"),
	)
	ErrLoadConfigFile = errors.Normalize(
		"load config file %s failed",
		errors.RFCCodeText("TickActor:ErrLoadConfigFile"),
	)

	// log related errors
	ErrInvalidLogLevel = errors.Normalize(
		"invalid log level: %s",
		errors.RFCCodeText("TickActor:ErrInvalidLogLevel"),
	)
)

// WrapError generates a new error based on given `*errors.Error`, wraps the err
// as cause error.
// If given `err` is nil, returns a nil error, which a the different behavior
// against `Wrap` function in pingcap/errors.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByCause(args...)
}

type rfcCoder interface {
	RFCCode() errors.RFCErrorCode
}

// RFCCode returns the RFC code of the outermost normalized error in the
// chain of err.
func RFCCode(err error) (errors.RFCErrorCode, bool) {
	for err != nil {
		if terr, ok := err.(rfcCoder); ok {
			return terr.RFCCode(), true
		}
		switch e := err.(type) {
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		case interface{ Cause() error }:
			err = e.Cause()
		default:
			return "", false
		}
	}
	return "", false
}

// IsRFCError returns true if err carries the RFC code of target, also when
// err was created by WrapError.
func IsRFCError(err error, target *errors.Error) bool {
	code, ok := RFCCode(err)
	return ok && code == target.RFCCode()
}
