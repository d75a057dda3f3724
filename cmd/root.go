package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rally_timecomp/internal/cmd/fetch"
	"rally_timecomp/internal/cmd/render"
	"rally_timecomp/internal/cmd/serve"
	"rally_timecomp/internal/config"
	"rally_timecomp/internal/log"
)

const envPrefix = "TIMECOMP"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timecomp",
	Short: "Stage time comparison spreadsheets for rally results",
	Long: `timecomp compares one competitor's stage and split times against
chosen benchmark competitors and writes the result as an xlsx workbook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	defer log.Sync()
	err := rootCmd.Execute()
	if err != nil {
		log.Error("command failed", log.ErrorField(err))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.timecomp.yml)")

	rootCmd.PersistentFlags().StringVar(&config.DataDir, "data-dir",
		"data",
		"directory holding the season and uid files")
	rootCmd.PersistentFlags().StringSliceVar(&config.Seasons, "season",
		config.DefaultSeasons,
		"season file as name=file, repeat for each season in display order")
	rootCmd.PersistentFlags().StringVar(&config.UIDFile, "uids",
		config.DefaultUIDFile,
		"identity file inside the data dir")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")

	// add commands here
	rootCmd.AddCommand(render.NewRenderCmd())
	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(fetch.NewFetchCmd())
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Could not read .env:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".timecomp")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}

	log.Init(config.LogLevel, config.LogFormat)
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --data-dir to TIMECOMP_DATA_DIR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		// slices arrive as yaml lists or comma separated env values
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			vals := v.GetStringSlice(f.Name)
			if s, isString := v.Get(f.Name).(string); isString {
				vals = strings.Split(s, ",")
			}
			if err := sv.Replace(vals); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
		}
	})
}
