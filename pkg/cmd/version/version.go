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

package version

import (
	"github.com/pingcap/tickactor/pkg/version"
	"github.com/spf13/cobra"
)

// options defines flags for the `version` command.
type options struct {
	semver bool
}

// addFlags receives a *cobra.Command reference and binds
// flags related to the version output to it.
func (o *options) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.semver, "semver", false, "print the release semver only")
}

// NewCmdVersion creates the `version` command.
func NewCmdVersion() *cobra.Command {
	o := &options{}

	command := &cobra.Command{
		Use:   "version",
		Short: "Output version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if o.semver {
				cmd.Println(version.ReleaseSemver())
				return
			}
			cmd.Print(version.GetRawInfo())
		},
	}

	o.addFlags(command)

	return command
}
