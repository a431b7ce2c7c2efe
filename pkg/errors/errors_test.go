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
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	var (
		rfcError  = ErrLoadConfigFile
		err       = errors.New("test")
		testCases = []struct {
			err   error
			isNil bool
			args  []interface{}
		}{
			{nil, true, []interface{}{}},
			{err, false, []interface{}{"a.toml"}},
		}
	)
	for _, tc := range testCases {
		we := WrapError(rfcError, tc.err, tc.args...)
		if tc.isNil {
			require.Nil(t, we)
		} else {
			require.NotNil(t, we)
			require.Contains(t, we.Error(), "TickActor:ErrLoadConfigFile")
			require.Contains(t, we.Error(), "test")
			require.True(t, IsRFCError(we, rfcError))
			require.True(t, IsRFCError(errors.Trace(we), rfcError))
			require.False(t, IsRFCError(we, ErrInvalidLogLevel))
			require.Equal(t, tc.err, errors.Cause(we))
		}
	}
}

func TestErrorCodes(t *testing.T) {
	t.Parallel()

	err := ErrActorSystemClosed.GenWithStackByArgs("demo")
	require.Equal(t, "[TickActor:ErrActorSystemClosed]actor system demo is closed", err.Error())
	require.True(t, ErrActorSystemClosed.Equal(err))
	require.False(t, ErrInvalidSystemConfig.Equal(err))
	require.True(t, ErrInvalidSystemConfig.Equal(errors.Trace(
		ErrInvalidSystemConfig.GenWithStackByArgs("bad"))))
}

func TestRFCCode(t *testing.T) {
	t.Parallel()

	code, ok := RFCCode(ErrInvalidDemoConfig.GenWithStackByArgs("bad"))
	require.True(t, ok)
	require.Equal(t, ErrInvalidDemoConfig.RFCCode(), code)

	_, ok = RFCCode(errors.New("plain"))
	require.False(t, ok)
	_, ok = RFCCode(nil)
	require.False(t, ok)
	require.False(t, IsRFCError(nil, ErrInvalidDemoConfig))
}
