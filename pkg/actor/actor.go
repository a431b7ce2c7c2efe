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

// Actor is a universal primitive of concurrent computation.
// See more https://en.wikipedia.org/wiki/Actor_model
//
// T is the type of the tag that names an actor, M is the type of the
// messages it reacts to.
type Actor[T comparable, M any] interface {
	// Act handles one message delivered to the actor bound to tag.
	//
	// Act is always called on the goroutine that drives the System, never
	// concurrently with another Act of the same System, so an actor may
	// mutate itself without locking. Implementations that keep state must
	// use a pointer receiver, the System stores the value passed to Bind.
	//
	// Actions submitted through ctx take effect on a later tick; an actor
	// never observes its own Send, Post, Bind or Stop within the same call.
	// Act must not block.
	Act(tag T, ctx Context[T, M], msg M)
}

// ActorFunc is an adapter to allow the use of ordinary functions as actors.
type ActorFunc[T comparable, M any] func(tag T, ctx Context[T, M], msg M)

// Act calls f(tag, ctx, msg).
func (f ActorFunc[T, M]) Act(tag T, ctx Context[T, M], msg M) {
	f(tag, ctx, msg)
}
