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

package pingpong

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/cmd/util"
	"github.com/pingcap/tickactor/pkg/config"
	"github.com/pingcap/tickactor/pkg/demo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options defines flags for the `pingpong` command.
type options struct {
	global *util.GlobalOptions

	rounds    int
	producers int
	balls     int
	serveRate int
}

// newOptions creates new options for the `pingpong` command.
func newOptions(global *util.GlobalOptions) *options {
	return &options{global: global}
}

// addFlags receives a *cobra.Command reference and binds
// flags related to the ping pong pair to it.
func (o *options) addFlags(cmd *cobra.Command) {
	defaultConfig := config.GetDefaultConfig()
	cmd.Flags().IntVar(&o.rounds, "rounds", defaultConfig.Demo.Rounds, "the number of hits of every rally")
	cmd.Flags().IntVar(&o.producers, "producers", defaultConfig.Demo.Producers, "the number of goroutines serving balls")
	cmd.Flags().IntVar(&o.balls, "balls", defaultConfig.Demo.Balls, "the number of balls served by every producer")
	cmd.Flags().IntVar(&o.serveRate, "serve-rate", defaultConfig.Demo.ServeRate, "the max number of balls a producer serves per second, 0 means unlimited")
}

// summary is printed when both players stop.
type summary struct {
	Rallies  int         `json:"rallies"`
	PingHits int         `json:"ping-hits"`
	PongHits int         `json:"pong-hits"`
	Stats    actor.Stats `json:"stats"`
}

func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.global.LoadConfig(cmd)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "rounds":
			cfg.Demo.Rounds = o.rounds
		case "producers":
			cfg.Demo.Producers = o.producers
		case "balls":
			cfg.Demo.Balls = o.balls
		case "serve-rate":
			cfg.Demo.ServeRate = o.serveRate
		}
	})
	if err := cfg.ValidateAndAdjust(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

func (o *options) run(cmd *cobra.Command) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return errors.Trace(err)
	}
	ctx, cancel := util.InitCmd(cmd, cfg.Log)
	defer cancel()

	res, err := demo.RunPingPong(ctx, cfg.Demo, actor.WithConfig(cfg.System))
	if err != nil {
		return errors.Trace(err)
	}
	err = util.JSONPrint(cmd, summary{
		Rallies:  res.Ping.Finished(),
		PingHits: res.Ping.Hits(),
		PongHits: res.Pong.Hits(),
		Stats:    res.Stats,
	})
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(o.global.Dump())
}

// NewCmdPingPong creates the `pingpong` command.
func NewCmdPingPong(global *util.GlobalOptions) *cobra.Command {
	o := newOptions(global)

	command := &cobra.Command{
		Use:   "pingpong",
		Short: "Run two actors hitting balls served by concurrent producers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	o.addFlags(command)

	return command
}
