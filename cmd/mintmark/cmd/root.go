// Package cmd implements the mintmark command line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mintmark/mintmark"
	"github.com/mintmark/mintmark/pkg/logging"
)

var (
	configFile string
	verbose    bool

	// Version is the release version set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mintmark",
	Short: "Collectible catalog CLI",
	Long: `Mintmark manages a collection of coins and banknotes: a local
collection with remote sync, imports from the external numismatic catalog,
and country resolution for external issuer names.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.mintmark.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("remote-url", "", "remote store URL")
	rootCmd.PersistentFlags().String("cache-dir", "", "local snapshot directory")

	cobra.CheckErr(viper.BindPFlag("remote_url", rootCmd.PersistentFlags().Lookup("remote-url")))
	cobra.CheckErr(viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir")))
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mintmark")
	}

	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	_ = viper.ReadInConfig()
}

// loadEnvFiles loads .env files in order of precedence, .env.local last.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// setupCommand configures logging before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	level := viper.GetString("log_level")
	if verbose {
		level = "debug"
	}
	logging.Configure(level, viper.GetString("log_format"))
	return nil
}

// newMintmark assembles a Mintmark instance from the resolved configuration.
func newMintmark(opts ...mintmark.Option) (mintmark.Mintmark, error) {
	base := []mintmark.Option{
		mintmark.WithRemoteServer(viper.GetString("remote_url"), viper.GetString("remote_api_key")),
		mintmark.WithCacheDir(viper.GetString("cache_dir")),
		mintmark.WithCatalogAPIKey(viper.GetString("numista_api_key")),
		mintmark.WithCatalogOAuth(viper.GetString("numista_client_id"), viper.GetString("numista_client_secret")),
	}
	if interval := viper.GetDuration("resync_interval"); interval > 0 {
		base = append(base,
			mintmark.WithResync(true),
			mintmark.WithResyncInterval(interval),
		)
	}
	return mintmark.New(append(base, opts...)...)
}

// closeAndFlush shuts a Mintmark instance down, bounded so a hung remote
// does not block command exit.
func closeAndFlush(m mintmark.Mintmark) {
	done := make(chan struct{})
	go func() {
		_ = m.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
