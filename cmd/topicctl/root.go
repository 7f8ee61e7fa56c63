package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "topicctl",
	Short: "Operator CLI for the topicscope discovery core",
	Long: `topicctl is a small operator CLI for the topicscope discovery core. It reads
and writes the same on-disk state the HTTP façade uses (topic state JSON, feed
SQLite stores), so it can be run interleaved with a live server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.topicctl.yaml)")

	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(trendCmd)
}

// initConfig reads a config file and environment variables if set. Flags and
// explicit TOPIC_STATE_PATH/LLM_PROVIDER/etc. env vars still win via config.Load,
// called per-command; this only seeds viper defaults a command may choose to read.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".topicctl")
	}

	viper.AutomaticEnv()
	viper.SetDefault("topic_state_path", "./data/topics.json")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
