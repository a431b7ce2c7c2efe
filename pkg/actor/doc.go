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

// Package actor provides a tick driven actor system. All actors of a System
// are polled by one goroutine, so an actor never needs a lock to protect its
// own state.
//
// Actors never touch the tables of a System directly. They, and any other
// goroutine holding a Context, submit actions (Bind, Send, Post, Stop) to an
// inbox. The following diagram shows how one tick processes them.
//
//	,-------.          ,-----.          ,------.   ,-------.   ,---------.  ,-----.
//	|Context|          |inbox|          |System|   |delayed|   |mailboxes|  |Actor|
//	`---+---'          `--+--'          `--+---'   `---+---'   `----+----'  `--+--'
//	    | Submit(actions) |                |           |            |          |
//	    |---------------->|                |           |            |          |
//	    |                 |    notify()    |           |            |          |
//	    |                 |--------------->|           |            |          |
//	    |                 |                |----.      |            |          |
//	    |                 |                |    | now = clock.Mono()|          |
//	    |                 |                |<---'      |            |          |
//	    |                 |    drain()     |           |            |          |
//	    |                 |<---------------|           |            |          |
//	    |                 |                | Post: push(now+delay)  |          |
//	    |                 |                |---------->|            |          |
//	    |                 |                | Send: push(msg)        |          |
//	    |                 |                |----------------------->|          |
//	    |                 |                | popDue(now)            |          |
//	    |                 |                |---------->|            |          |
//	    |                 |                |           Act(tag, ctx, msg)      |
//	    |                 |                |---------------------------------->|
//	    |                 |                | pop() once per tag     |          |
//	    |                 |                |----------------------->|          |
//	    |                 |                |           Act(tag, ctx, msg)      |
//	    |                 |                |---------------------------------->|
//	,---+---.          ,--+--.          ,--+---.   ,---+---.   ,----+----.  ,--+--.
//	|Context|          |inbox|          |System|   |delayed|   |mailboxes|  |Actor|
//	`-------'          `-----'          `------'   `-------'   `---------'  `-----'
//
// Messages for a tag without a bound actor are discarded when they are
// reached, and a System stops running once no actor is bound at the end of
// a tick.
package actor
