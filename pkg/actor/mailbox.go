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
	"github.com/edwingeng/deque"
)

// mailbox is the FIFO queue of undelivered messages of one tag.
// It is only accessed by the goroutine that drives the System.
type mailbox[M any] struct {
	queue deque.Deque // stores M
}

func newMailbox[M any]() *mailbox[M] {
	return &mailbox[M]{queue: deque.NewDeque()}
}

func (m *mailbox[M]) push(msg M) {
	m.queue.PushBack(msg)
}

func (m *mailbox[M]) pop() (M, bool) {
	if m.queue.Empty() {
		var noVal M
		return noVal, false
	}
	// A nil interface message must come back as the zero M.
	msg, _ := m.queue.PopFront().(M)
	return msg, true
}

func (m *mailbox[M]) len() int {
	return m.queue.Len()
}
