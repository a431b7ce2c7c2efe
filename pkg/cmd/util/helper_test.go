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

package util

import (
	"bytes"
	"testing"

	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestJSONPrint(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	var b bytes.Buffer
	cmd.SetOut(&b)

	stats := actor.Stats{Actors: 1, Mailboxes: 2, Ticks: 3}
	require.NoError(t, JSONPrint(cmd, stats))
	require.JSONEq(t, `{
		"Actors": 1,
		"Mailboxes": 2,
		"PendingMessages": 0,
		"PendingTimers": 0,
		"PendingActions": 0,
		"Ticks": 3,
		"Now": 0
	}`, b.String())

	b.Reset()
	require.Error(t, JSONPrint(cmd, make(chan int)))
	require.Empty(t, b.String())
}
