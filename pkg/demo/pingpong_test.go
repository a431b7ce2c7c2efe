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
	"testing"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/clock"
	"github.com/pingcap/tickactor/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestPlayersWithMockClock(t *testing.T) {
	t.Parallel()

	const (
		rounds = 5
		balls  = 3
	)
	sys := actor.NewSystem[string, Ball](t.Name(), actor.WithClock(clock.NewMock()))
	defer sys.Close()

	ping := NewPlayer(PongTag, rounds, balls, nil)
	pong := NewPlayer(PingTag, rounds, balls, nil)
	ctx := sys.Context()
	ctx.Bind(PingTag, ping)
	ctx.Bind(PongTag, pong)
	for i := 0; i < balls; i++ {
		ctx.Send(PingTag, Ball{ID: i})
	}

	for i := 0; i < 1000; i++ {
		sys.Tick()
		if sys.Stats().Actors == 0 {
			break
		}
	}
	require.Equal(t, 0, sys.Stats().Actors)
	require.Equal(t, balls, ping.Finished())
	require.Equal(t, balls, pong.Finished())
	// Balls are served to ping, so ping hits the odd numbered hits.
	require.Equal(t, balls*(rounds+1)/2, ping.Hits())
	require.Equal(t, balls*(rounds/2), pong.Hits())
}

func TestRunPingPong(t *testing.T) {
	t.Parallel()

	cfg := &config.DemoConfig{Rounds: 20, Producers: 4, Balls: 1}
	res, err := RunPingPong(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 0, res.Stats.Actors)
	require.Equal(t, cfg.Producers, res.Ping.Finished())
	require.Equal(t, cfg.Producers, res.Pong.Finished())
	require.Equal(t, cfg.Rounds*cfg.Producers, res.Ping.Hits()+res.Pong.Hits())
}

func TestRunPingPongRateLimited(t *testing.T) {
	t.Parallel()

	cfg := &config.DemoConfig{Rounds: 3, Producers: 2, Balls: 5, ServeRate: 200}
	start := time.Now()
	res, err := RunPingPong(context.Background(), cfg)
	require.NoError(t, err)
	balls := cfg.Producers * cfg.Balls
	require.Equal(t, balls, res.Ping.Finished())
	require.Equal(t, balls, res.Pong.Finished())
	require.Equal(t, cfg.Rounds*balls, res.Ping.Hits()+res.Pong.Hits())
	// Each producer waits 5ms between two serves.
	require.GreaterOrEqual(t, time.Since(start), 3*5*time.Millisecond)
}

func TestRunPingPongCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := RunPingPong(ctx, &config.DemoConfig{Rounds: 20, Producers: 2, Balls: 1})
	require.Equal(t, context.Canceled, errors.Cause(err))
	require.Equal(t, 2, res.Stats.Actors)
}
