package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/config"
	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/pkg/cmd/root"
)

func Execute() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	cfg, err := config.Bootstrap(home)
	cobra.CheckErr(err)

	rootCmd, err := root.NewCmdRoot(cfg)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
