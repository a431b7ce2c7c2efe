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

package actor

import (
	"testing"
	"time"

	"github.com/pingcap/tickactor/pkg/clock"
	"github.com/stretchr/testify/require"
)

func TestActionTypeString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "bind", ActionBind.String())
	require.Equal(t, "send", ActionSend.String())
	require.Equal(t, "post", ActionPost.String())
	require.Equal(t, "stop", ActionStop.String())
	require.Equal(t, "unknown(0)", ActionUnknown.String())
	require.Equal(t, "unknown(42)", ActionType(42).String())
}

func TestActionConstructors(t *testing.T) {
	t.Parallel()

	a := ActorFunc[string, int](func(string, Context[string, int], int) {})

	bind := Bind[string, int]("a", a)
	require.Equal(t, ActionBind, bind.Type)
	require.Equal(t, "a", bind.Tag)
	require.NotNil(t, bind.Actor)

	send := Send("a", 1)
	require.Equal(t, Action[string, int]{Type: ActionSend, Tag: "a", Msg: 1}, send)

	post := Post("a", 2, time.Second)
	require.Equal(t, Action[string, int]{Type: ActionPost, Tag: "a", Msg: 2, Delay: time.Second}, post)

	stop := Stop[string, int]("a")
	require.Equal(t, Action[string, int]{Type: ActionStop, Tag: "a"}, stop)
}

func TestActorFunc(t *testing.T) {
	t.Parallel()

	var (
		gotTag string
		gotMsg int
	)
	var a Actor[string, int] = ActorFunc[string, int](
		func(tag string, ctx Context[string, int], msg int) {
			gotTag, gotMsg = tag, msg
		})
	a.Act("a", Context[string, int]{}, 7)
	require.Equal(t, "a", gotTag)
	require.Equal(t, 7, gotMsg)
}

func TestContextSubmitsInOrder(t *testing.T) {
	t.Parallel()

	in := newInbox[string, int](t.Name())
	ctx := Context[string, int]{inbox: in, now: clock.MonotonicTime(time.Second)}
	noop := ActorFunc[string, int](func(string, Context[string, int], int) {})

	ctx.Bind("a", noop)
	ctx.Send("a", 1)
	ctx.Post("a", 2, time.Millisecond)
	ctx.Stop("a")
	ctx.Submit(Send("b", 3), Send("b", 4))
	ctx.Submit()

	require.Equal(t, 6, in.len())
	actions := in.drain(nil)
	require.Len(t, actions, 6)

	types := make([]ActionType, 0, len(actions))
	for _, a := range actions {
		types = append(types, a.Type)
	}
	require.Equal(t, []ActionType{
		ActionBind, ActionSend, ActionPost, ActionStop, ActionSend, ActionSend,
	}, types)
	require.Equal(t, time.Millisecond, actions[2].Delay)
	require.Equal(t, 4, actions[5].Msg)

	// Now is fixed at creation.
	require.Equal(t, clock.MonotonicTime(time.Second), ctx.Now())
}

func TestUninitializedContextPanics(t *testing.T) {
	t.Parallel()

	var ctx Context[string, int]
	require.Panics(t, func() { ctx.Send("a", 1) })
}
