package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"imgurgrab/pkg/auth"
	"imgurgrab/pkg/config"
	"imgurgrab/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Write a configuration file with the default settings.

The file goes to $HOME/.config/imgurgrab/config.yaml unless --path says
otherwise. Existing files are not overwritten.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run:   runConfigShow,
}

var configInitPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write the config file")
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := configInitPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.PrintError("Failed to determine home directory", err.Error())
			os.Exit(1)
		}
		path = filepath.Join(home, ".config", "imgurgrab", "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		ui.PrintWarning("Config file already exists", path)
		os.Exit(1)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		ui.PrintError("Failed to write config file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Config file created.")
	ui.PrintInfo("Path", path)
	fmt.Println("\nSet your imgur client ID with 'imgurgrab auth set', or put it")
	fmt.Println("under imgur.client_id in the config file.")
	fmt.Println("Register one at https://api.imgur.com/oauth2/addclient")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	flags := make(map[string]interface{})
	if level := effectiveLogLevel(); level != "info" {
		flags["log-level"] = level
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Never print the raw credential
	if cfg.Imgur.ClientID != "" {
		cfg.Imgur.ClientID = auth.MaskClientID(cfg.Imgur.ClientID)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to render configuration", err.Error())
		os.Exit(1)
	}

	fmt.Print(string(data))
}
