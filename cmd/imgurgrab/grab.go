package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"imgurgrab/pkg/auth"
	"imgurgrab/pkg/config"
	"imgurgrab/pkg/crawler"
	"imgurgrab/pkg/logger"
	"imgurgrab/pkg/ui"
)

var (
	// Grab command flags
	recursive       bool
	htmlOutput      bool
	clientID        string
	rateLimit       int
	maxRetries      int
	downloadTimeout int
)

// grabCmd represents the grab command
var grabCmd = &cobra.Command{
	Use:   "grab <source-url> [destination]",
	Short: "Download an imgur album and everything it links to",
	Long: `Download the album referenced by the source URL into the destination
directory (or the configured base directory when omitted).

Recognized URL shapes:
  https://imgur.com/gallery/<id>
  https://imgur.com/a/<id>
  https://imgur.com/r/<subreddit>/<id>

With --recursive, album links found in image and album descriptions are
crawled too; each distinct album is downloaded at most once, even when
albums reference each other. With --html, every album becomes a single
index.html plus stylesheet instead of discrete text files.`,
	Example: `  # Download one album into ./downloads
  imgurgrab grab https://imgur.com/a/abc123

  # Download into a specific directory, following linked albums
  imgurgrab grab https://imgur.com/gallery/xyz789 ~/pictures/imgur --recursive

  # Produce a browsable HTML page per album
  imgurgrab grab https://imgur.com/a/abc123 --html`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runGrab(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grabCmd)

	grabCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "discover further albums in descriptions")
	grabCmd.Flags().BoolVar(&htmlOutput, "html", false, "write one HTML document per album instead of text files")
	grabCmd.Flags().StringVar(&clientID, "client-id", "", "imgur API client ID (overrides stored credential)")
	grabCmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "API requests per minute")
	grabCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "maximum number of retry attempts")
	grabCmd.Flags().IntVar(&downloadTimeout, "download-timeout", 30, "download timeout in seconds")
}

func runGrab(cmd *cobra.Command, args []string) {
	sourceURL := strings.TrimSpace(args[0])
	ui.PrintInfo("Source", sourceURL)

	// Build flags map from command line
	flags := make(map[string]interface{})
	if len(args) > 1 {
		flags["output"] = filepath.Clean(args[1])
	}
	if cmd.Flags().Changed("recursive") {
		flags["recursive"] = recursive
	}
	if cmd.Flags().Changed("html") {
		flags["html"] = htmlOutput
	}
	if clientID != "" {
		flags["client-id"] = clientID
	}
	if rateLimit != 60 {
		flags["rate-limit"] = rateLimit
	}
	if maxRetries != 3 {
		flags["max-retries"] = maxRetries
	}
	if downloadTimeout != 30 {
		flags["download-timeout"] = downloadTimeout
	}
	if level := effectiveLogLevel(); level != "info" {
		flags["log-level"] = level
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	logger.WithField("version", version).Info("imgurgrab starting")

	// Resolve the API credential: flag/config/env first, then the
	// credential manager chain (keychain, encrypted file).
	if cfg.Imgur.ClientID == "" {
		credManager, err := auth.NewManager()
		if err != nil {
			ui.PrintError("Failed to initialize credential manager", err.Error())
			os.Exit(1)
		}

		cred, err := credManager.Retrieve()
		if err != nil {
			logger.Error("No imgur client ID found")
			ui.PrintError("No imgur client ID found", "")
			fmt.Println("\nTo store a client ID securely, run:")
			fmt.Println("  imgurgrab auth set")
			fmt.Println("\nRegister a new client ID at:")
			fmt.Println("  https://api.imgur.com/oauth2/addclient")
			fmt.Println("\nFor one-off runs you can also use:")
			fmt.Println("  --client-id <id>  or  IMGURGRAB_CLIENT_ID=<id>")
			os.Exit(1)
		}

		cfg.Imgur.ClientID = cred.ClientID
		logger.Info("Using stored credential")
	}

	logger.WithField("url", sourceURL).Info("Starting crawl")
	ui.PrintInfo("Destination", cfg.Output.BaseDirectory)

	c, err := crawler.New(cfg)
	if err != nil {
		ui.PrintError("Failed to initialize crawler", err.Error())
		os.Exit(1)
	}

	if err := c.Run(sourceURL); err != nil {
		logger.WithError(err).WithField("url", sourceURL).Error("Crawl failed")
		ui.PrintError("Crawl failed", err.Error())
		os.Exit(1)
	}

	logger.Info("Crawl completed")
	ui.PrintSuccess("Done.")
}
