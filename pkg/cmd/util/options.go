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

package util

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/pingcap/tickactor/pkg/actor"
	"github.com/pingcap/tickactor/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// GlobalOptions defines the flags shared by all commands.
type GlobalOptions struct {
	ConfigFile  string
	LogLevel    string
	LogFile     string
	DumpMetrics bool

	// Registry collects the metrics of the actor systems run by a command.
	Registry *prometheus.Registry
}

// NewGlobalOptions creates new global options with a registry that has all
// actor metrics registered.
func NewGlobalOptions() *GlobalOptions {
	registry := prometheus.NewRegistry()
	actor.InitMetrics(registry)
	return &GlobalOptions{Registry: registry}
}

// AddFlags binds the global flags to cmd as persistent flags.
func (o *GlobalOptions) AddFlags(cmd *cobra.Command) {
	defaultConfig := config.GetDefaultConfig()
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "", "Path of the configuration file")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", defaultConfig.LogLevel, "log level (etc: debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", defaultConfig.LogFile, "log file path")
	cmd.PersistentFlags().BoolVar(&o.DumpMetrics, "dump-metrics", false, "log all metrics after the command finishes")
}

// LoadConfig loads the config file if one is given, then applies the global
// flags set on the command line. The returned config is not validated.
func (o *GlobalOptions) LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetDefaultConfig()
	if len(o.ConfigFile) > 0 {
		if err := cfg.LoadFromFile(o.ConfigFile); err != nil {
			return nil, errors.Trace(err)
		}
	}
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "log-level":
			cfg.LogLevel = o.LogLevel
		case "log-file":
			cfg.LogFile = o.LogFile
		}
	})
	return cfg, nil
}

// Dump logs every sample gathered from the registry if --dump-metrics is set.
func (o *GlobalOptions) Dump() error {
	if !o.DumpMetrics {
		return nil
	}
	families, err := o.Registry.Gather()
	if err != nil {
		return errors.Trace(err)
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			fields := make([]zap.Field, 0, len(m.GetLabel())+3)
			fields = append(fields, zap.String("metric", family.GetName()))
			for _, label := range m.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			fields = append(fields, sampleFields(family.GetType(), m)...)
			log.Info("metric", fields...)
		}
	}
	return nil
}

func sampleFields(tp dto.MetricType, m *dto.Metric) []zap.Field {
	switch tp {
	case dto.MetricType_COUNTER:
		return []zap.Field{zap.Float64("value", m.GetCounter().GetValue())}
	case dto.MetricType_GAUGE:
		return []zap.Field{zap.Float64("value", m.GetGauge().GetValue())}
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return []zap.Field{
			zap.Uint64("count", h.GetSampleCount()),
			zap.Float64("sum", h.GetSampleSum()),
		}
	default:
		return []zap.Field{zap.Stringer("type", tp)}
	}
}
