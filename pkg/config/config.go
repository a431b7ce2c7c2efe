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
	"encoding/json"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	cerrors "github.com/pingcap/tickactor/pkg/errors"
	"github.com/pingcap/tickactor/pkg/logutil"
	"go.uber.org/zap"
)

var defaultConfig = &Config{
	LogLevel: "info",
	LogFile:  "",
	Log: &logutil.Config{
		FileMaxSize: 300,
	},
	System: &SystemConfig{
		MaxIdleWait:      0,
		SlowActThreshold: TomlDuration(100 * time.Millisecond),
		BusyPoll:         false,
	},
	Demo: &DemoConfig{
		Rounds:    10,
		Interval:  TomlDuration(100 * time.Millisecond),
		Producers: 2,
		Balls:     1,
		ServeRate: 0,
	},
}

// Config is the top level configuration of the tickactor binary.
type Config struct {
	LogLevel string          `toml:"log-level" json:"log-level"`
	LogFile  string          `toml:"log-file" json:"log-file"`
	Log      *logutil.Config `toml:"log" json:"log"`

	System *SystemConfig `toml:"system" json:"system"`
	Demo   *DemoConfig   `toml:"demo" json:"demo"`
}

// GetDefaultConfig returns the default config.
func GetDefaultConfig() *Config {
	return defaultConfig.Clone()
}

// Clone clones a config.
func (c *Config) Clone() *Config {
	str, err := json.Marshal(c)
	if err != nil {
		log.Panic("failed to marshal config", zap.Error(err))
	}
	clone := new(Config)
	if err := json.Unmarshal(str, clone); err != nil {
		log.Panic("failed to unmarshal config", zap.Error(err))
	}
	return clone
}

// LoadFromFile loads config from the toml file at path. Keys that do not
// map to any config field are rejected.
func (c *Config) LoadFromFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return cerrors.WrapError(cerrors.ErrLoadConfigFile, err, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cerrors.WrapError(cerrors.ErrLoadConfigFile,
			errors.Errorf("unknown config keys: %s", strings.Join(keys, ", ")), path)
	}
	return nil
}

// ValidateAndAdjust validates and adjusts the config.
func (c *Config) ValidateAndAdjust() error {
	if c.Log == nil {
		c.Log = &logutil.Config{}
	}
	if c.LogLevel != "" {
		c.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		c.Log.File = c.LogFile
	}
	c.Log.Adjust()
	c.LogLevel = c.Log.Level
	c.LogFile = c.Log.File

	if c.System == nil {
		c.System = defaultConfig.System.clone()
	}
	if err := c.System.ValidateAndAdjust(); err != nil {
		return errors.Trace(err)
	}
	if c.Demo == nil {
		c.Demo = defaultConfig.Demo.clone()
	}
	if err := c.Demo.ValidateAndAdjust(); err != nil {
		return errors.Trace(err)
	}
	return nil
}
