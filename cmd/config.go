package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// configCmd prints the effective factory configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective factory configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadFactoryConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		data, err := cfg.YAML()
		if err != nil {
			logrus.Fatalf("Failed to encode config: %v", err)
		}
		_, _ = cmd.OutOrStdout().Write(data)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
