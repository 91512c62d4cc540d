package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Trials         int    `mapstructure:"trials"`
	Seed           int64  `mapstructure:"seed"`
	Workers        int    `mapstructure:"workers"`
	Format         string `mapstructure:"format"`
	Output         string `mapstructure:"output"`
	Generators     string `mapstructure:"generators"`
	ContinueOnFail bool   `mapstructure:"continue_on_fail"`
	RecordTrials   bool   `mapstructure:"record_trials"`
	CorpusDir      string `mapstructure:"corpus_dir"`
	LogDir         string `mapstructure:"log_dir"`
	LogFormat      string `mapstructure:"log_format"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".safecheck")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
