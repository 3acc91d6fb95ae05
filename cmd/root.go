/*
	Copyright 2025 Markus Papenbrock
*/

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	calcCmd "github.com/mpapenbr/triathlon-pacer/pkg/cmd/calc"
	migrateCmd "github.com/mpapenbr/triathlon-pacer/pkg/cmd/migrate"
	pacesetCmd "github.com/mpapenbr/triathlon-pacer/pkg/cmd/paceset"
	serverCmd "github.com/mpapenbr/triathlon-pacer/pkg/cmd/server"
	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/config"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/version"
)

const envPrefix = "TPC"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tpc",
	Short:   "Triathlon pace calculator",
	Long:    `Calculates paces, speeds and times of triathlon races and manages saved pace sets.`,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return util.SetupLogger()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag definitions
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.tpc.yml)")

	rootCmd.PersistentFlags().StringVar(&config.Store, "store",
		"bolt",
		"store for pace sets (memory, bolt, postgres, nats)")
	rootCmd.PersistentFlags().StringVar(&config.StoreKey, "store-key",
		paceset.DefaultKey,
		"key holding the pace set collection")
	rootCmd.PersistentFlags().StringVar(&config.BoltFile, "bolt-file",
		defaultBoltFile(),
		"path to the bolt database file")
	rootCmd.PersistentFlags().StringVar(&config.DB, "db",
		"postgresql://DB_USERNAME:DB_USER_PASSWORD@DB_HOST:5432/tpc",
		"Connection string for the database")
	rootCmd.PersistentFlags().StringVar(&config.NATSURL, "nats-url",
		"nats://localhost:4222",
		"URL of the NATS server")
	rootCmd.PersistentFlags().StringVar(&config.NATSBucket, "nats-bucket",
		kv.DefaultBucket,
		"NATS key-value bucket")
	rootCmd.PersistentFlags().Float64Var(&config.SpeedCap, "speed-cap",
		pace.DefaultSpeedCap,
		"upper bound for bike speeds in km/h")
	rootCmd.PersistentFlags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for other services to be ready")
	rootCmd.PersistentFlags().StringVarP(&config.Output, "output", "o",
		"text",
		"output format (text, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"warn",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"info",
		"controls the log level for sql methods")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules, e.g. \"debug:paceset info:*\"")

	// add commands here
	rootCmd.AddCommand(calcCmd.NewCalcCmd())
	rootCmd.AddCommand(pacesetCmd.NewPaceSetCmd())
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
	rootCmd.AddCommand(serverCmd.NewServerCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.FullVersion)
		},
	}
}

func defaultBoltFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tpc.db"
	}
	return filepath.Join(home, ".tpc.db")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tpc" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tpc")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindAll(rootCmd, viper.GetViper())
}

func bindAll(cmd *cobra.Command, v *viper.Viper) {
	bindFlags(cmd, v)
	for _, sub := range cmd.Commands() {
		bindAll(sub, v)
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --speed-cap to TPC_SPEED_CAP
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
