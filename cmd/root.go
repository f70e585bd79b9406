package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillaja/spacesim/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "spacesim",
	Short: "Headless 2D stellar n-body simulator",
	Long: "Spacesim integrates a 2D gravitational n-body system with anomalies\n" +
		"(wormholes, repulsors) and a fusion rule table that decides what each\n" +
		"collision becomes. Runs are recorded to sqlite or chunk files for\n" +
		"external renderers.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .spacesim.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "text or json")
}

// initConfig wires the precedence chain: flags > SPACESIM_* env > config
// file > defaults, all resolved through viper.
func initConfig() {
	_ = godotenv.Load()

	config.SetDefaults(viper.GetViper())

	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".spacesim")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SPACESIM")
	viper.AutomaticEnv()

	// a missing config file is fine; defaults and env stand
	_ = viper.ReadInConfig()

	overrideFromFlag("log_level", "log-level")
	overrideFromFlag("log_format", "log-format")
}

// overrideFromFlag pushes an explicitly set persistent flag into viper.
// Only changed flags override, so env and config keep working when the
// flag is absent.
func overrideFromFlag(key, flag string) {
	f := rootCmd.PersistentFlags().Lookup(flag)
	if f != nil && f.Changed {
		viper.Set(key, f.Value.String())
	}
}
