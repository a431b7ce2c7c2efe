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
	"github.com/google/btree"
	"github.com/pingcap/tickactor/pkg/clock"
)

const defaultDelayQueueDegree = 16

// delayedItem is a message scheduled for delivery at deadline.
type delayedItem[T comparable, M any] struct {
	deadline clock.MonotonicTime
	// seq is the insertion order, it makes items with the same deadline
	// fire in the order they were posted.
	seq uint64
	tag T
	msg M
}

// lessDelayedItem orders items by deadline, then by insertion order.
func lessDelayedItem[T comparable, M any](a, b delayedItem[T, M]) bool {
	if a.deadline != b.deadline {
		return a.deadline < b.deadline
	}
	return a.seq < b.seq
}

// delayQueue holds delayed deliveries of all tags ordered by deadline.
// It is only accessed by the goroutine that drives the System.
type delayQueue[T comparable, M any] struct {
	tree    *btree.BTreeG[delayedItem[T, M]]
	nextSeq uint64
}

func newDelayQueue[T comparable, M any]() *delayQueue[T, M] {
	return &delayQueue[T, M]{
		tree: btree.NewG(defaultDelayQueueDegree, lessDelayedItem[T, M]),
	}
}

func (q *delayQueue[T, M]) push(deadline clock.MonotonicTime, tag T, msg M) {
	q.tree.ReplaceOrInsert(delayedItem[T, M]{
		deadline: deadline,
		seq:      q.nextSeq,
		tag:      tag,
		msg:      msg,
	})
	q.nextSeq++
}

// nextDeadline returns the earliest deadline in the queue.
func (q *delayQueue[T, M]) nextDeadline() (clock.MonotonicTime, bool) {
	item, ok := q.tree.Min()
	return item.deadline, ok
}

// popDue removes and returns the earliest item if its deadline is not
// after now.
func (q *delayQueue[T, M]) popDue(now clock.MonotonicTime) (delayedItem[T, M], bool) {
	item, ok := q.tree.Min()
	if !ok || item.deadline > now {
		return delayedItem[T, M]{}, false
	}
	q.tree.DeleteMin()
	return item, true
}

func (q *delayQueue[T, M]) len() int {
	return q.tree.Len()
}
