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
	"time"

	"github.com/pingcap/log"
	"github.com/pingcap/tickactor/pkg/clock"
)

// Context submits actions to a System.
//
// A Context is a small value and can be copied freely. Copies may be used
// from any goroutine; none of its methods blocks, and none of them changes
// the System immediately, every action is applied by the next drain phase.
type Context[T comparable, M any] struct {
	inbox *inbox[T, M]
	now   clock.MonotonicTime
}

// Send delivers msg to the actor bound to tag on a later tick.
func (c Context[T, M]) Send(tag T, msg M) {
	c.Submit(Send(tag, msg))
}

// Post delivers msg to the actor bound to tag once delay has elapsed,
// counted from the tick that drains the request.
func (c Context[T, M]) Post(tag T, msg M, delay time.Duration) {
	c.Submit(Post(tag, msg, delay))
}

// Bind binds a to tag, replacing the actor currently bound to it.
func (c Context[T, M]) Bind(tag T, a Actor[T, M]) {
	c.Submit(Bind(tag, a))
}

// Stop removes the actor bound to tag. Messages and timers already queued
// for tag are discarded when they are reached.
func (c Context[T, M]) Stop(tag T) {
	c.Submit(Stop[T, M](tag))
}

// Submit enqueues actions in order. The actions of one call are never
// interleaved with actions submitted concurrently.
func (c Context[T, M]) Submit(actions ...Action[T, M]) {
	if c.inbox == nil {
		log.Panic("submit through an uninitialized actor context")
	}
	if len(actions) == 0 {
		return
	}
	c.inbox.push(actions...)
}

// Now returns the time of the tick that created the context. It does not
// change during an Act call.
func (c Context[T, M]) Now() clock.MonotonicTime {
	return c.now
}
