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
	"context"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/pingcap/tickactor/pkg/clock"
	"github.com/pingcap/tickactor/pkg/config"
	"github.com/pingcap/tickactor/pkg/logutil"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Opt represents an option to configure a System.
type Opt func(*options)

type options struct {
	clock  clock.Clock
	cfg    *config.SystemConfig
	logger *zap.Logger
}

// WithClock sets the clock a System samples once per tick.
// The default is the system clock.
func WithClock(c clock.Clock) Opt {
	return func(o *options) {
		o.clock = c
	}
}

// WithConfig sets the config of a System. The config is used as is,
// callers are expected to validate it first.
func WithConfig(cfg *config.SystemConfig) Opt {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger of a System.
func WithLogger(logger *zap.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

// Stats is a snapshot of the tables of a System.
type Stats struct {
	// Actors is the number of bound actors.
	Actors int
	// Mailboxes is the number of mailboxes, including empty ones.
	Mailboxes int
	// PendingMessages is the number of messages in all mailboxes.
	PendingMessages int
	// PendingTimers is the number of delayed deliveries not yet fired.
	PendingTimers int
	// PendingActions is the number of submitted actions not yet drained.
	PendingActions int
	// Ticks is the number of ticks run so far.
	Ticks uint64
	// Now is the time of the latest tick.
	Now clock.MonotonicTime
}

// System owns a set of actors and drives them with a single goroutine.
//
// Every tick the System samples its clock once, applies all submitted
// actions, delivers the delayed messages whose deadline has passed and then
// delivers at most one message from each non-empty mailbox.
type System[T comparable, M any] struct {
	name   string
	clock  clock.Clock
	cfg    *config.SystemConfig
	logger *zap.Logger

	actors    map[T]Actor[T, M]
	mailboxes map[T]*mailbox[M]
	delayed   *delayQueue[T, M]
	inbox     *inbox[T, M]

	// pendingMessages is the sum of the lengths of all mailboxes.
	pendingMessages int
	// drainBuf is reused by every drain phase.
	drainBuf []Action[T, M]

	now   clock.MonotonicTime
	ticks uint64
	// lastTick mirrors now for contexts created outside of the loop.
	lastTick atomic.Int64

	metrics systemMetrics
}

// NewSystem returns a new System. name identifies the system in logs and
// metrics, two live systems must not share a name.
func NewSystem[T comparable, M any](name string, opts ...Opt) *System[T, M] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.cfg == nil {
		o.cfg = config.NewDefaultSystemConfig()
	}
	if o.logger == nil {
		o.logger = log.L()
	}

	return &System[T, M]{
		name:      name,
		clock:     o.clock,
		cfg:       o.cfg,
		logger:    o.logger.With(zap.String("name", name)),
		actors:    make(map[T]Actor[T, M]),
		mailboxes: make(map[T]*mailbox[M]),
		delayed:   newDelayQueue[T, M](),
		inbox:     newInbox[T, M](name),
		metrics:   newSystemMetrics(name),
	}
}

// Name returns the name of the system.
func (s *System[T, M]) Name() string {
	return s.name
}

// Context returns a handle that submits actions to the system. Its Now
// reports the time of the latest tick, or zero before the first tick.
func (s *System[T, M]) Context() Context[T, M] {
	return Context[T, M]{
		inbox: s.inbox,
		now:   clock.MonotonicTime(s.lastTick.Load()),
	}
}

// Run drives the system until no actor is bound, or until ctx is done.
// It must not be called concurrently with Run or Tick.
//
// Between ticks Run sleeps until the earliest of the next timer deadline,
// the next submitted action and the configured max idle wait, unless a
// mailbox still has messages.
func (s *System[T, M]) Run(ctx context.Context) error {
	s.logger.Info("actor system started")
	for {
		s.Tick()
		if len(s.actors) == 0 {
			s.logger.Info("actor system stopped, no actor is bound",
				zap.Uint64("ticks", s.ticks))
			return nil
		}
		if err := s.wait(ctx); err != nil {
			s.logger.Info("actor system stopped",
				zap.Uint64("ticks", s.ticks),
				zap.Int("actors", len(s.actors)),
				logutil.ZapErrorFilter(err, context.Canceled))
			return errors.Trace(err)
		}
	}
}

// Tick runs one iteration of the loop: drain actions, fire due timers and
// dispatch one message per non-empty mailbox. It must not be called
// concurrently with Run or Tick.
func (s *System[T, M]) Tick() {
	s.now = s.clock.Mono()
	s.lastTick.Store(int64(s.now))
	s.ticks++
	s.metrics.ticks.Inc()

	s.drainActions()
	s.fireTimers()
	s.dispatchMailboxes()

	s.metrics.actors.Set(float64(len(s.actors)))
	s.metrics.pendingTimers.Set(float64(s.delayed.len()))
}

// Stats returns a snapshot of the tables of the system. It must not be
// called concurrently with Run or Tick.
func (s *System[T, M]) Stats() Stats {
	return Stats{
		Actors:          len(s.actors),
		Mailboxes:       len(s.mailboxes),
		PendingMessages: s.pendingMessages,
		PendingTimers:   s.delayed.len(),
		PendingActions:  s.inbox.len(),
		Ticks:           s.ticks,
		Now:             s.now,
	}
}

// Close releases the system. Submitting actions through any of its
// contexts afterwards panics.
func (s *System[T, M]) Close() {
	s.inbox.close()
	removeSystemMetrics(s.name)
	s.logger.Info("actor system closed",
		zap.Int("actors", len(s.actors)),
		zap.Int("pendingMessages", s.pendingMessages),
		zap.Int("pendingTimers", s.delayed.len()))
}

func (s *System[T, M]) drainActions() {
	s.drainBuf = s.inbox.drain(s.drainBuf[:0])
	for i := range s.drainBuf {
		s.apply(&s.drainBuf[i])
		// Release the message and actor referenced by the buffer.
		s.drainBuf[i] = Action[T, M]{}
	}
}

func (s *System[T, M]) apply(a *Action[T, M]) {
	s.logger.Debug("apply action",
		zap.Stringer("type", a.Type),
		zap.Any("tag", a.Tag))

	switch a.Type {
	case ActionBind:
		if a.Actor == nil {
			// There is nothing to dispatch to, unbind the tag instead.
			s.logger.Warn("bind a nil actor, the tag is unbound", zap.Any("tag", a.Tag))
			delete(s.actors, a.Tag)
			return
		}
		s.actors[a.Tag] = a.Actor
	case ActionSend:
		mb, ok := s.mailboxes[a.Tag]
		if !ok {
			mb = newMailbox[M]()
			s.mailboxes[a.Tag] = mb
		}
		mb.push(a.Msg)
		s.pendingMessages++
	case ActionPost:
		delay := a.Delay
		if delay < 0 {
			delay = 0
		}
		s.delayed.push(s.now.Add(delay), a.Tag, a.Msg)
	case ActionStop:
		delete(s.actors, a.Tag)
	default:
		log.Panic("unknown action type",
			zap.String("name", s.name),
			zap.Stringer("type", a.Type))
	}
}

func (s *System[T, M]) fireTimers() {
	for {
		item, ok := s.delayed.popDue(s.now)
		if !ok {
			return
		}
		s.deliver(item.tag, item.msg, sourceTimer)
	}
}

func (s *System[T, M]) dispatchMailboxes() {
	// Act can not change the maps, its actions are applied by the next
	// drain phase, so it is safe to dispatch while ranging.
	for tag, mb := range s.mailboxes {
		msg, ok := mb.pop()
		if !ok {
			continue
		}
		s.pendingMessages--
		s.deliver(tag, msg, sourceMailbox)
	}
}

func (s *System[T, M]) deliver(tag T, msg M, src dispatchSource) {
	a, ok := s.actors[tag]
	if !ok {
		s.metrics.dropped[src].Inc()
		s.logger.Debug("drop message, no actor is bound",
			zap.Any("tag", tag),
			zap.Stringer("source", src))
		return
	}

	start := s.clock.Mono()
	a.Act(tag, Context[T, M]{inbox: s.inbox, now: s.now}, msg)
	elapsed := s.clock.Mono().Sub(start)

	s.metrics.dispatched[src].Inc()
	s.metrics.actDuration.Observe(elapsed.Seconds())
	if threshold := time.Duration(s.cfg.SlowActThreshold); threshold > 0 && elapsed > threshold {
		s.logger.Warn("actor act is too slow",
			zap.Any("tag", tag),
			zap.Stringer("source", src),
			zap.Duration("duration", elapsed),
			zap.Duration("threshold", threshold))
	}
}

// wait blocks until there may be work for the next tick.
func (s *System[T, M]) wait(ctx context.Context) error {
	if s.cfg.BusyPoll || s.pendingMessages > 0 || s.inbox.len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	d := time.Duration(s.cfg.MaxIdleWait)
	if deadline, ok := s.delayed.nextDeadline(); ok {
		until := deadline.Sub(s.clock.Mono())
		if until <= 0 {
			return ctx.Err()
		}
		if d <= 0 || until < d {
			d = until
		}
	}

	var timeout <-chan time.Time
	if d > 0 {
		timer := s.clock.Timer(d)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.inbox.notify:
	case <-timeout:
	}
	return nil
}
