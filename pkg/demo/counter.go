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

package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/clock"
	"github.com/pingcap/tickactor/pkg/config"
	"go.uber.org/zap"
)

// CounterTag is the tag the counter is bound to.
const CounterTag = "counter"

// Signal is the only message the counter understands.
type Signal struct{}

// CounterPhase is the state of a Counter.
type CounterPhase int

// All counter phases.
const (
	PhaseEmpty CounterPhase = iota
	PhaseCounting
	PhaseDone
)

func (p CounterPhase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseCounting:
		return "counting"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// Step records one message handled by a Counter.
type Step struct {
	// Phase is the phase the counter was in when the message arrived.
	Phase CounterPhase
	// N is the count before the message was handled.
	N int
	// Now is the tick time of the delivery.
	Now clock.MonotonicTime
	// Elapsed is the time since the previous counting step, zero for the
	// empty and done phases.
	Elapsed time.Duration
}

// Counter counts up to a number of rounds, waking itself up with a delayed
// message after every round.
//
//	empty -> counting(0) -> ... -> counting(rounds) -> done -> stopped
//
// Leaving empty and reaching the last round send the signal immediately,
// every other round posts it with the configured interval.
type Counter struct {
	rounds   int
	interval time.Duration
	logger   *zap.Logger

	phase CounterPhase
	n     int
	last  clock.MonotonicTime
	steps []Step
}

// NewCounter returns a counter in the empty phase.
func NewCounter(rounds int, interval time.Duration, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = log.L()
	}
	return &Counter{
		rounds:   rounds,
		interval: interval,
		logger:   logger,
	}
}

// Act implements actor.Actor.
func (c *Counter) Act(tag string, ctx actor.Context[string, Signal], msg Signal) {
	now := ctx.Now()
	step := Step{Phase: c.phase, N: c.n, Now: now}
	switch c.phase {
	case PhaseEmpty:
		ctx.Send(tag, msg)
		c.phase = PhaseCounting
		c.last = now
	case PhaseCounting:
		step.Elapsed = now.Sub(c.last)
		c.logger.Info("counter step",
			zap.String("tag", tag),
			zap.Int("n", c.n),
			zap.Duration("elapsed", step.Elapsed))
		c.last = now
		if c.n >= c.rounds {
			ctx.Send(tag, msg)
			c.phase = PhaseDone
			break
		}
		c.n++
		ctx.Post(tag, msg, c.interval)
	case PhaseDone:
		ctx.Stop(tag)
	default:
		log.Panic("unknown counter phase", zap.Stringer("phase", c.phase))
	}
	c.steps = append(c.steps, step)
}

// Phase returns the current phase.
func (c *Counter) Phase() CounterPhase {
	return c.phase
}

// Steps returns all handled messages in delivery order.
func (c *Counter) Steps() []Step {
	return c.steps
}

// RunCounter binds a counter to a new system, kicks it off and runs the
// system until the counter stops.
func RunCounter(
	ctx context.Context, cfg *config.DemoConfig, opts ...actor.Opt,
) (*Counter, actor.Stats, error) {
	sys := actor.NewSystem[string, Signal]("counter", opts...)
	defer sys.Close()

	counter := NewCounter(cfg.Rounds, time.Duration(cfg.Interval), nil)
	actx := sys.Context()
	actx.Bind(CounterTag, counter)
	actx.Send(CounterTag, Signal{})

	start := time.Now()
	if err := sys.Run(ctx); err != nil {
		return counter, sys.Stats(), errors.Trace(err)
	}
	log.Info("counter finished",
		zap.Int("rounds", cfg.Rounds),
		zap.Duration("duration", time.Since(start)))
	return counter, sys.Stats(), nil
}
