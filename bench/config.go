package main

import (
	"strings"

	"github.com/flxai/soft-brownian-offset/bench/logger"
	"github.com/flxai/soft-brownian-offset/sbo"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stageOpts 各阶段共用的压测参数
type stageOpts struct {
	dMin          float64
	dOff          float64
	samples       int
	softness      sbo.Softness
	seed          int64
	maxIterations int
	workers       int
	reportDir     string
	progress      bool
	log           *logger.LogConfig
}

// loadStageOpts 合并命令行、环境变量（SBO_ 前缀）与可选配置文件 sbo_config.yaml
func loadStageOpts(cmd *cobra.Command, v *viper.Viper) (*stageOpts, error) {
	v.SetEnvPrefix("sbo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	// 日志参数在配置文件中位于 log 段下
	for key, flag := range map[string]string{"log.level": "log-level", "log.path": "log-path"} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "bind %s", flag)
		}
	}

	// 命令行指定了配置文件则直接使用，否则在当前目录查找 sbo_config.yaml
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sbo_config")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "read sbo_config")
			}
		}
	}

	softness, err := sbo.ParseSoftness(softnessValue(v.Get("softness")))
	if err != nil {
		return nil, err
	}
	lc := logger.DefaultLogConfig(false)
	if lvl := v.GetString("log.level"); lvl != "" {
		if lc.LogLevel, err = logger.ParseLevel(lvl); err != nil {
			return nil, err
		}
	}
	lc.LogPath = v.GetString("log.path")

	return &stageOpts{
		dMin:          v.GetFloat64("d-min"),
		dOff:          v.GetFloat64("d-off"),
		samples:       v.GetInt("samples"),
		softness:      softness,
		seed:          v.GetInt64("seed"),
		maxIterations: v.GetInt("max-iterations"),
		workers:       v.GetInt("workers"),
		reportDir:     v.GetString("report-dir"),
		progress:      v.GetBool("progress"),
		log:           lc,
	}, nil
}

// softnessValue 将命令行与环境变量中的字符串转换为数字或布尔值，其余类型原样交给 sbo.ParseSoftness 校验
func softnessValue(raw any) any {
	str, ok := raw.(string)
	if !ok {
		return raw
	}
	if f, err := cast.ToFloat64E(str); err == nil {
		return f
	}
	if b, err := cast.ToBoolE(str); err == nil {
		return b
	}
	return str
}

// walkerConfig 将压测参数转换为 sbo.Config
func (o *stageOpts) walkerConfig() *sbo.Config {
	seed := o.seed
	return &sbo.Config{
		DMin:          o.dMin,
		DOff:          o.dOff,
		NSamples:      o.samples,
		Softness:      o.softness,
		RandomState:   &seed,
		MaxIterations: o.maxIterations,
		Workers:       o.workers,
	}
}
