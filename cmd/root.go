package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Root = &cobra.Command{
	Use:   "zhtrans",
	Short: "Translate between Chinese and English interactively",
	Long: `zhtrans reads one line at a time and translates it between Chinese and English.
Lines containing any Chinese character are translated to English, everything else to Chinese.
Type exit, quit or q (any case) to leave, or press Ctrl+C / Ctrl+D.`,
	Example:           "zhtrans --engine libretranslate --base-url http://localhost:5000",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runInteractive,
}

func init() {
	flags := Root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.zhtrans.yaml)")
	flags.StringP("engine", "e", "google", "translation engine: google, libretranslate or anthropic")
	flags.String("api-key", "", "provider API key (anthropic falls back to $ANTHROPIC_KEY)")
	flags.String("model", "", "model name for the anthropic engine")
	flags.String("base-url", "", "override the provider endpoint")
	flags.String("proxy", "", "HTTP proxy for the google engine")
	flags.Duration("timeout", 0, "per-request timeout (0 uses the engine default)")
	flags.Int("rate", 0, "maximum provider requests per minute (0 = unlimited)")
	flags.Duration("cache-ttl", 15*time.Minute, "how long translations are cached (0 disables the cache)")
	flags.Int64("cache-max-cost", 1e7, "cache size budget in bytes of translated text")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")

	for _, name := range []string{"config", "engine", "api-key", "model", "base-url", "proxy", "timeout", "rate", "cache-ttl", "cache-max-cost", "log-level"} {
		if err := viper.BindPFlag(configKey(name), flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	Root.AddCommand(Serve)
	Root.AddCommand(Detect)
}
