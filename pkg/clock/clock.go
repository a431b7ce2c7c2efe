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

package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
	"github.com/gavv/monotime"
)

type (
	// Timer is a timer created by a Clock.
	Timer = bclock.Timer
	// MonotonicTime is a point in time expressed as the duration elapsed
	// since the epoch of the clock that produced it. Values produced by
	// different clocks must not be compared.
	MonotonicTime time.Duration
)

var unixEpoch = time.Unix(0, 0)

// Clock supplies wall time, timers and a monotonic reading.
// The real clock counts Mono from a process-local origin, the mock clock
// counts it from the Unix epoch.
type Clock interface {
	bclock.Clock
	Mono() MonotonicTime
}

type withRealMono struct {
	bclock.Clock
}

func (r withRealMono) Mono() MonotonicTime {
	return MonotonicTime(monotime.Now())
}

// Mock is a manually driven Clock. Time only moves on Add or Set.
type Mock struct {
	*bclock.Mock
}

// Mono implements Clock.
func (r Mock) Mono() MonotonicTime {
	return MonotonicTime(r.Now().Sub(unixEpoch))
}

// New returns a Clock backed by the system clock.
func New() Clock {
	return withRealMono{bclock.New()}
}

// NewMock returns a mock clock starting at the Unix epoch.
func NewMock() *Mock {
	return &Mock{bclock.NewMock()}
}

// Sub returns the duration m-other.
func (m MonotonicTime) Sub(other MonotonicTime) time.Duration {
	return time.Duration(m - other)
}

// Add returns m+d.
func (m MonotonicTime) Add(d time.Duration) MonotonicTime {
	return m + MonotonicTime(d)
}

// Milliseconds returns m as an integer millisecond count.
func (m MonotonicTime) Milliseconds() int64 {
	return time.Duration(m).Milliseconds()
}

// String implements fmt.Stringer.
func (m MonotonicTime) String() string {
	return time.Duration(m).String()
}

// MonoNow returns the current monotonic time of the real clock.
func MonoNow() MonotonicTime {
	return MonotonicTime(monotime.Now())
}
