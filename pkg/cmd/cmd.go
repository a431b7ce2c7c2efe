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

package cmd

import (
	"os"

	"github.com/pingcap/tickactor/pkg/cmd/counter"
	"github.com/pingcap/tickactor/pkg/cmd/pingpong"
	"github.com/pingcap/tickactor/pkg/cmd/util"
	"github.com/pingcap/tickactor/pkg/cmd/version"
	"github.com/spf13/cobra"
)

// NewCmd creates the root command with all subcommands attached.
func NewCmd() *cobra.Command {
	global := util.NewGlobalOptions()
	cmd := &cobra.Command{
		Use:               "tickactor",
		Short:             "tickactor",
		Long:              `Tick driven actor system demos`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	global.AddFlags(cmd)
	cmd.AddCommand(counter.NewCmdCounter(global))
	cmd.AddCommand(pingpong.NewCmdPingPong(global))
	cmd.AddCommand(version.NewCmdVersion())
	return cmd
}

// Run runs the root command.
func Run() {
	cmd := NewCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	util.CheckErr(cmd.Execute())
}
