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
	"os"
	"path/filepath"
	"testing"
	"time"

	cerrors "github.com/pingcap/tickactor/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testConfigFile = `
log-level = "debug"

[system]
max-idle-wait = "50ms"
slow-act-threshold = "20ms"
busy-poll = true

[demo]
rounds = 3
interval = "5ms"
producers = 4
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "tickactor.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultConfig()
	require.NoError(t, cfg.ValidateAndAdjust())
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, TomlDuration(0), cfg.System.MaxIdleWait)
	require.Equal(t, TomlDuration(100*time.Millisecond), cfg.System.SlowActThreshold)
	require.False(t, cfg.System.BusyPoll)
	require.Equal(t, 10, cfg.Demo.Rounds)
	require.Equal(t, TomlDuration(100*time.Millisecond), cfg.Demo.Interval)

	// The default config must not be shared between callers.
	cfg.Demo.Rounds = 1
	require.Equal(t, 10, GetDefaultConfig().Demo.Rounds)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultConfig()
	require.NoError(t, cfg.LoadFromFile(writeConfig(t, testConfigFile)))
	require.NoError(t, cfg.ValidateAndAdjust())

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, TomlDuration(50*time.Millisecond), cfg.System.MaxIdleWait)
	require.Equal(t, TomlDuration(20*time.Millisecond), cfg.System.SlowActThreshold)
	require.True(t, cfg.System.BusyPoll)
	require.Equal(t, 3, cfg.Demo.Rounds)
	require.Equal(t, TomlDuration(5*time.Millisecond), cfg.Demo.Interval)
	require.Equal(t, 4, cfg.Demo.Producers)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, cerrors.IsRFCError(err, cerrors.ErrLoadConfigFile))

	err = cfg.LoadFromFile(writeConfig(t, "[system]\nunknown-key = 1\n"))
	require.True(t, cerrors.IsRFCError(err, cerrors.ErrLoadConfigFile))
	require.Contains(t, err.Error(), "system.unknown-key")

	err = cfg.LoadFromFile(writeConfig(t, "[system]\nmax-idle-wait = \"soon\"\n"))
	require.True(t, cerrors.IsRFCError(err, cerrors.ErrLoadConfigFile))
}

func TestSystemConfigValidateAndAdjust(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		cfg      SystemConfig
		hasErr   bool
		expected SystemConfig
	}{
		{
			cfg:      SystemConfig{},
			expected: SystemConfig{SlowActThreshold: TomlDuration(100 * time.Millisecond)},
		},
		{
			cfg:      SystemConfig{MaxIdleWait: TomlDuration(time.Second), SlowActThreshold: 1},
			expected: SystemConfig{MaxIdleWait: TomlDuration(time.Second), SlowActThreshold: 1},
		},
		{cfg: SystemConfig{MaxIdleWait: -1}, hasErr: true},
		{cfg: SystemConfig{SlowActThreshold: -1}, hasErr: true},
		{cfg: SystemConfig{MaxIdleWait: TomlDuration(2 * time.Hour)}, hasErr: true},
	}
	for _, tc := range testCases {
		cfg := tc.cfg
		err := cfg.ValidateAndAdjust()
		if tc.hasErr {
			require.True(t, cerrors.ErrInvalidSystemConfig.Equal(err))
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.expected, cfg)
	}
}

func TestDemoConfigValidateAndAdjust(t *testing.T) {
	t.Parallel()

	cfg := &DemoConfig{Rounds: 1}
	require.NoError(t, cfg.ValidateAndAdjust())
	require.Equal(t, 2, cfg.Producers)
	require.Equal(t, 1, cfg.Balls)
	require.Equal(t, 0, cfg.ServeRate)

	for _, bad := range []DemoConfig{
		{Rounds: 0},
		{Rounds: 1, Interval: -1},
		{Rounds: 1, Producers: -1},
		{Rounds: 1, Balls: -1},
		{Rounds: 1, ServeRate: -1},
	} {
		bad := bad
		require.True(t, cerrors.ErrInvalidDemoConfig.Equal(bad.ValidateAndAdjust()))
	}
}

func TestTomlDurationJSON(t *testing.T) {
	t.Parallel()

	d := TomlDuration(1500 * time.Millisecond)
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"1.5s"`, string(b))

	var got TomlDuration
	require.NoError(t, got.UnmarshalJSON(b))
	require.Equal(t, d, got)
	require.NoError(t, got.UnmarshalJSON([]byte("1000")))
	require.Equal(t, TomlDuration(1000), got)
	require.Error(t, got.UnmarshalJSON([]byte("true")))
}
