package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/config"
	"github.com/aidmqan/mqan-console/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var (
	configInitPath  string
	configInitForce bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(configInitPath, configInitForce); err != nil {
			return err
		}
		ui.PrintSuccess("Wrote " + configInitPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		file := cfg.File
		if file == "" {
			file = "(none, defaults and environment)"
		}
		fmt.Fprintf(out, "config file      %s\n", file)
		fmt.Fprintf(out, "db_path          %s\n", cfg.DBPath)
		fmt.Fprintf(out, "log_level        %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_file         %s\n", cfg.LogFile)
		fmt.Fprintf(out, "feed             every %s, %d events, %d primed, seed %d\n",
			cfg.Feed.Interval, cfg.Feed.Capacity, cfg.Feed.Initial, cfg.Feed.Seed)
		fmt.Fprintf(out, "server           %s %v\n", cfg.Server.Addr, cfg.Server.AllowedOrigins)
		fmt.Fprintf(out, "quality          threshold %d%%\n", cfg.Quality.Threshold)
		fmt.Fprintf(out, "system           %s, session timeout %dm\n", cfg.System.Name, cfg.System.SessionTimeout)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", config.FileName+".yaml", "file to write")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
