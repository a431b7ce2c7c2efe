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

package counter

import (
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/cmd/util"
	"github.com/pingcap/tickactor/pkg/config"
	"github.com/pingcap/tickactor/pkg/demo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options defines flags for the `counter` command.
type options struct {
	global *util.GlobalOptions

	rounds   int
	interval time.Duration
}

// newOptions creates new options for the `counter` command.
func newOptions(global *util.GlobalOptions) *options {
	return &options{global: global}
}

// addFlags receives a *cobra.Command reference and binds
// flags related to the counter to it.
func (o *options) addFlags(cmd *cobra.Command) {
	defaultConfig := config.GetDefaultConfig()
	cmd.Flags().IntVar(&o.rounds, "rounds", defaultConfig.Demo.Rounds, "the number of steps to count")
	cmd.Flags().DurationVar(&o.interval, "interval", time.Duration(defaultConfig.Demo.Interval), "the delay between two steps")
}

// summary is printed when the counter finishes.
type summary struct {
	Phase string      `json:"phase"`
	Steps []step      `json:"steps"`
	Stats actor.Stats `json:"stats"`
}

type step struct {
	Phase   string `json:"phase"`
	N       int    `json:"n"`
	Elapsed string `json:"elapsed"`
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
		case "interval":
			cfg.Demo.Interval = config.TomlDuration(o.interval)
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

	counter, stats, err := demo.RunCounter(ctx, cfg.Demo, actor.WithConfig(cfg.System))
	if err != nil {
		return errors.Trace(err)
	}

	s := summary{Phase: counter.Phase().String(), Stats: stats}
	for _, st := range counter.Steps() {
		s.Steps = append(s.Steps, step{
			Phase:   st.Phase.String(),
			N:       st.N,
			Elapsed: st.Elapsed.String(),
		})
	}
	if err := util.JSONPrint(cmd, s); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(o.global.Dump())
}

// NewCmdCounter creates the `counter` command.
func NewCmdCounter(global *util.GlobalOptions) *cobra.Command {
	o := newOptions(global)

	command := &cobra.Command{
		Use:   "counter",
		Short: "Run an actor that counts with delayed messages to itself",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	o.addFlags(command)

	return command
}
