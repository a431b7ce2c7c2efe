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

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/config"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Tags of the two players.
const (
	PingTag = "ping"
	PongTag = "pong"
)

// Ball is hit back and forth between two players.
type Ball struct {
	// ID identifies the ball among all served balls.
	ID int
	// Hits is the number of times the ball has been hit.
	Hits int
	// Over is set on the ball that tells the peer the rally has ended.
	Over bool
}

// Player hits every ball back to its peer until the ball has been hit
// rounds times. A player stops itself once it has seen the end of every
// rally it expects.
type Player struct {
	peer   string
	rounds int
	balls  int
	logger *zap.Logger

	hits     int
	finished int
}

// NewPlayer returns a player that expects balls rallies of rounds hits.
func NewPlayer(peer string, rounds, balls int, logger *zap.Logger) *Player {
	if logger == nil {
		logger = log.L()
	}
	return &Player{
		peer:   peer,
		rounds: rounds,
		balls:  balls,
		logger: logger,
	}
}

// Act implements actor.Actor.
func (p *Player) Act(tag string, ctx actor.Context[string, Ball], ball Ball) {
	switch {
	case ball.Over:
		p.finish(tag, ctx, ball)
	case ball.Hits >= p.rounds:
		ctx.Send(p.peer, Ball{ID: ball.ID, Hits: ball.Hits, Over: true})
		p.finish(tag, ctx, ball)
	default:
		p.hits++
		ball.Hits++
		ctx.Send(p.peer, ball)
	}
}

func (p *Player) finish(tag string, ctx actor.Context[string, Ball], ball Ball) {
	p.finished++
	p.logger.Debug("rally finished",
		zap.String("tag", tag),
		zap.Int("ball", ball.ID),
		zap.Int("hits", ball.Hits),
		zap.Int("finished", p.finished))
	if p.finished == p.balls {
		ctx.Stop(tag)
	}
}

// Hits returns how many times the player hit a ball.
func (p *Player) Hits() int {
	return p.hits
}

// Finished returns how many rallies the player has seen end.
func (p *Player) Finished() int {
	return p.finished
}

// PingPongResult is the outcome of RunPingPong.
type PingPongResult struct {
	Ping  *Player
	Pong  *Player
	Stats actor.Stats
}

// RunPingPong binds two players to a new system and serves cfg.Balls balls
// from each of cfg.Producers goroutines while the system runs.
func RunPingPong(
	ctx context.Context, cfg *config.DemoConfig, opts ...actor.Opt,
) (*PingPongResult, error) {
	sys := actor.NewSystem[string, Ball]("pingpong", opts...)
	defer sys.Close()

	balls := cfg.Producers * cfg.Balls
	res := &PingPongResult{
		Ping: NewPlayer(PongTag, cfg.Rounds, balls, nil),
		Pong: NewPlayer(PingTag, cfg.Rounds, balls, nil),
	}
	actx := sys.Context()
	actx.Bind(PingTag, res.Ping)
	actx.Bind(PongTag, res.Pong)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sys.Run(gctx)
	})
	for i := 0; i < cfg.Producers; i++ {
		producer := i
		g.Go(func() error {
			rl := ratelimit.NewUnlimited()
			if cfg.ServeRate > 0 {
				rl = ratelimit.New(cfg.ServeRate)
			}
			for b := 0; b < cfg.Balls; b++ {
				rl.Take()
				select {
				case <-gctx.Done():
					return errors.Trace(gctx.Err())
				default:
				}
				actx.Send(PingTag, Ball{ID: producer*cfg.Balls + b})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.Stats = sys.Stats()
		return res, errors.Trace(err)
	}
	res.Stats = sys.Stats()
	log.Info("ping pong finished",
		zap.Int("rallies", balls),
		zap.Int("pingHits", res.Ping.Hits()),
		zap.Int("pongHits", res.Pong.Hits()),
		zap.Uint64("ticks", res.Stats.Ticks))
	return res, nil
}
