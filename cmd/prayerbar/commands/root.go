// Package commands implements the prayerbar command line: the same schedule
// engine as the tray app, printing to the terminal instead.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/borgmon/prayer-bar/pkg/fetcher"
	"github.com/borgmon/prayer-bar/pkg/logger"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// appFs is where caches, exports and quotation files are read and written
var appFs = afero.NewOsFs()

var cfgFile string

// NewRootCmd builds the command tree. Flags are bound to the global viper instance.
func NewRootCmd() *cobra.Command {
	var bindErr error
	rootCmd := &cobra.Command{
		Use:   "prayerbar",
		Short: "Prayer Bar - prayer windows, countdowns and reminders",
		Long: `Prayer Bar fetches the day's prayer times for a location, shows which
prayer window is active and how long it has left, and can stay running to
notify at prayer time, congregation time and shortly before each prayer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if bindErr != nil {
				return fmt.Errorf("failed to bind flags: %w", bindErr)
			}
			initConfig()
			logger.New(viper.GetString("log-level"), !viper.GetBool("log-json"))
			if used := viper.ConfigFileUsed(); used != "" {
				log.Debug().Str("file", used).Msg("Using config file")
			}
			return nil
		},
	}

	def := models.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.prayerbar.yaml)")
	flags.Float64("lat", def.Latitude, "latitude in decimal degrees")
	flags.Float64("lng", def.Longitude, "longitude in decimal degrees")
	flags.String("tz", def.Timezone, "IANA timezone of the location")
	flags.String("lang", def.Language, "display language (en, bn)")
	flags.String("asr", def.AsrConvention, "Asr convention (hanafi, standard)")
	flags.Bool("congregation", def.CongregationEnabled, "derive congregation windows and alarms")
	flags.Bool("quotes", def.QuoteReminders, "remind 5 minutes before each prayer with a quotation")
	flags.Bool("chime", false, "play a chime at prayer time (watch)")
	flags.String("quotes-file", "", "JSON file of quotations replacing the built-in list")
	flags.String("cache", "", "schedule cache file (default is the user cache dir)")
	flags.String("base-url", fetcher.DefaultBaseURL, "time-table API endpoint")
	flags.String("at", "", "evaluate at this instant (RFC3339 or HH:MM today) instead of now")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log JSON lines instead of console output")

	bindErr = viper.BindPFlags(flags)

	rootCmd.AddCommand(
		newTodayCmd(),
		newNowCmd(),
		newWatchCmd(),
		newICSCmd(),
		newQuoteCmd(),
	)

	return rootCmd
}

// Execute runs the command line with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".prayerbar")
	}

	viper.SetEnvPrefix("PRAYERBAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Warn().Err(err).Msg("Failed to read config file")
		}
	}
}
