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
	"sync"

	"github.com/edwingeng/deque"
	"github.com/pingcap/log"
	cerrors "github.com/pingcap/tickactor/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// inbox is an unbounded multi-producer single-consumer queue of actions.
// Producers never block on the consumer. An action pushed before drain
// starts is always returned by that drain.
type inbox[T comparable, M any] struct {
	name string

	// mu protects queue and closed, because deque is not thread-safe.
	mu     sync.Mutex
	queue  deque.Deque // stores Action[T, M]
	closed bool

	size atomic.Int64
	// notify has a buffer of one and is signaled after every push, it wakes
	// up a consumer that waits for new actions.
	notify chan struct{}
}

func newInbox[T comparable, M any](name string) *inbox[T, M] {
	return &inbox[T, M]{
		name:   name,
		queue:  deque.NewDeque(),
		notify: make(chan struct{}, 1),
	}
}

func (b *inbox[T, M]) push(actions ...Action[T, M]) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		// The consumer is gone, nobody will ever apply the actions.
		log.Panic("submit actions to a closed actor system",
			zap.String("name", b.name),
			zap.Int("actions", len(actions)),
			zap.Error(cerrors.ErrActorSystemClosed.GenWithStackByArgs(b.name)))
	}
	for i := range actions {
		b.queue.PushBack(actions[i])
	}
	b.size.Add(int64(len(actions)))
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// drain appends all buffered actions to buf in FIFO order and returns it.
func (b *inbox[T, M]) drain(buf []Action[T, M]) []Action[T, M] {
	b.mu.Lock()
	defer b.mu.Unlock()

	for !b.queue.Empty() {
		a, _ := b.queue.PopFront().(Action[T, M])
		buf = append(buf, a)
	}
	b.size.Store(0)
	return buf
}

// len returns the number of buffered actions.
func (b *inbox[T, M]) len() int {
	return int(b.size.Load())
}

// close rejects all later pushes and discards the buffered actions.
func (b *inbox[T, M]) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.queue = deque.NewDeque()
	b.size.Store(0)
}
