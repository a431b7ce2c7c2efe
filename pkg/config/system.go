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

package config

import (
	"time"

	cerrors "github.com/pingcap/tickactor/pkg/errors"
)

// SystemConfig configs an actor system.
type SystemConfig struct {
	// MaxIdleWait caps how long an idle system sleeps before it samples the
	// clock again. Zero means the system sleeps until the next timer
	// deadline or the next submitted action.
	MaxIdleWait TomlDuration `toml:"max-idle-wait" json:"max-idle-wait"`
	// SlowActThreshold is the duration above which an Act call is logged.
	SlowActThreshold TomlDuration `toml:"slow-act-threshold" json:"slow-act-threshold"`
	// BusyPoll makes the loop poll for work without sleeping.
	BusyPoll bool `toml:"busy-poll" json:"busy-poll"`
}

// NewDefaultSystemConfig returns the default system config.
func NewDefaultSystemConfig() *SystemConfig {
	return defaultConfig.System.clone()
}

func (c *SystemConfig) clone() *SystemConfig {
	clone := *c
	return &clone
}

// ValidateAndAdjust validates and adjusts the system config.
func (c *SystemConfig) ValidateAndAdjust() error {
	if c.MaxIdleWait < 0 {
		return cerrors.ErrInvalidSystemConfig.GenWithStackByArgs(
			"max-idle-wait must not be negative")
	}
	if c.SlowActThreshold < 0 {
		return cerrors.ErrInvalidSystemConfig.GenWithStackByArgs(
			"slow-act-threshold must not be negative")
	}
	if c.SlowActThreshold == 0 {
		c.SlowActThreshold = defaultConfig.System.SlowActThreshold
	}
	if time.Duration(c.MaxIdleWait) > time.Hour {
		return cerrors.ErrInvalidSystemConfig.GenWithStackByArgs(
			"max-idle-wait is larger than 1h")
	}
	return nil
}
