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
	"fmt"
	"time"
)

// ActionType is the type of an Action.
type ActionType int

// All action types.
const (
	ActionUnknown ActionType = iota
	// ActionBind registers an actor under a tag, replacing any actor that
	// is already bound to it.
	ActionBind
	// ActionSend appends a message to the mailbox of a tag.
	ActionSend
	// ActionPost schedules a message for a tag after a delay.
	ActionPost
	// ActionStop removes the actor bound to a tag.
	ActionStop
)

// String implements fmt.Stringer.
func (t ActionType) String() string {
	switch t {
	case ActionBind:
		return "bind"
	case ActionSend:
		return "send"
	case ActionPost:
		return "post"
	case ActionStop:
		return "stop"
	default:
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Action is a deferred mutation of a System. Actions are applied in
// submission order during the drain phase of a tick.
//
// Only the fields relevant to Type are set: Actor for ActionBind, Msg for
// ActionSend and ActionPost, Delay for ActionPost.
type Action[T comparable, M any] struct {
	Type  ActionType
	Tag   T
	Msg   M
	Actor Actor[T, M]
	Delay time.Duration
}

// Bind returns an action that binds a to tag.
func Bind[T comparable, M any](tag T, a Actor[T, M]) Action[T, M] {
	return Action[T, M]{Type: ActionBind, Tag: tag, Actor: a}
}

// Send returns an action that appends msg to the mailbox of tag.
func Send[T comparable, M any](tag T, msg M) Action[T, M] {
	return Action[T, M]{Type: ActionSend, Tag: tag, Msg: msg}
}

// Post returns an action that delivers msg to tag once delay has elapsed.
// The delay is relative to the tick that applies the action.
func Post[T comparable, M any](tag T, msg M, delay time.Duration) Action[T, M] {
	return Action[T, M]{Type: ActionPost, Tag: tag, Msg: msg, Delay: delay}
}

// Stop returns an action that removes the actor bound to tag.
func Stop[T comparable, M any](tag T) Action[T, M] {
	return Action[T, M]{Type: ActionStop, Tag: tag}
}
