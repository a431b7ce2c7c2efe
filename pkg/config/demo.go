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
	cerrors "github.com/pingcap/tickactor/pkg/errors"
)

// DemoConfig configs the demo programs shipped with the tickactor binary.
type DemoConfig struct {
	// Rounds is the number of counter steps or ping-pong exchanges.
	Rounds int `toml:"rounds" json:"rounds"`
	// Interval is the delay the counter posts to itself between steps.
	Interval TomlDuration `toml:"interval" json:"interval"`
	// Producers is the number of goroutines submitting to the ping-pong pair.
	Producers int `toml:"producers" json:"producers"`
	// Balls is the number of balls served by every producer.
	Balls int `toml:"balls" json:"balls"`
	// ServeRate caps how many balls a producer serves per second, zero
	// means unlimited.
	ServeRate int `toml:"serve-rate" json:"serve-rate"`
}

func (c *DemoConfig) clone() *DemoConfig {
	clone := *c
	return &clone
}

// ValidateAndAdjust validates and adjusts the demo config.
func (c *DemoConfig) ValidateAndAdjust() error {
	if c.Rounds <= 0 {
		return cerrors.ErrInvalidDemoConfig.GenWithStackByArgs("rounds must be positive")
	}
	if c.Interval < 0 {
		return cerrors.ErrInvalidDemoConfig.GenWithStackByArgs("interval must not be negative")
	}
	if c.Producers == 0 {
		c.Producers = defaultConfig.Demo.Producers
	}
	if c.Producers < 0 {
		return cerrors.ErrInvalidDemoConfig.GenWithStackByArgs("producers must be positive")
	}
	if c.Balls == 0 {
		c.Balls = defaultConfig.Demo.Balls
	}
	if c.Balls < 0 {
		return cerrors.ErrInvalidDemoConfig.GenWithStackByArgs("balls must be positive")
	}
	if c.ServeRate < 0 {
		return cerrors.ErrInvalidDemoConfig.GenWithStackByArgs("serve-rate must not be negative")
	}
	return nil
}
