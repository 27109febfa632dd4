package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyenvanduocit/zhtrans/pkg/translator"
)

// configKey maps a flag name to its viper key, e.g. "api-key" -> "api_key".
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func initConfig(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("zhtrans")
	viper.AutomaticEnv()

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".zhtrans")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	return logger, nil
}

func translatorConfig(v *viper.Viper, logger *logrus.Logger) (translator.Config, error) {
	engine, err := translator.ParseEngineType(v.GetString("engine"))
	if err != nil {
		return translator.Config{}, err
	}

	apiKey := v.GetString("api_key")
	if apiKey == "" && engine == translator.EngineAnthropic {
		apiKey = os.Getenv("ANTHROPIC_KEY")
	}

	rate := v.GetInt("rate")
	if rate < 0 {
		return translator.Config{}, fmt.Errorf("rate must not be negative, got %d", rate)
	}

	return translator.Config{
		Engine:        engine,
		APIKey:        apiKey,
		Model:         v.GetString("model"),
		BaseURL:       v.GetString("base_url"),
		Proxy:         v.GetString("proxy"),
		Timeout:       v.GetDuration("timeout"),
		RatePerMinute: rate,
		CacheTTL:      v.GetDuration("cache_ttl"),
		CacheMaxCost:  v.GetInt64("cache_max_cost"),
		Logger:        logger,
	}, nil
}

// closer is implemented by translators holding background resources.
type closer interface {
	Close()
}

// setup builds the logger and the configured translator for a command.
func setup() (translator.Translator, *logrus.Logger, func(), error) {
	logger, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := translatorConfig(viper.GetViper(), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	tr, err := translator.NewTranslator(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create translator: %w", err)
	}

	cleanup := func() {
		if c, ok := tr.(closer); ok {
			c.Close()
		}
	}

	return tr, logger, cleanup, nil
}
