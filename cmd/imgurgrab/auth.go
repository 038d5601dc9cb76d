package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"imgurgrab/pkg/auth"
	"imgurgrab/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the imgur API credential",
	Long: `Manage the stored imgur API client ID.

The credential is stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variable (IMGURGRAB_CLIENT_ID, read-only)

Register a client ID at https://api.imgur.com/oauth2/addclient.`,
}

// authSetCmd represents the auth set command
var authSetCmd = &cobra.Command{
	Use:   "set [client-id]",
	Short: "Store the imgur client ID securely",
	Long: `Store the imgur client ID in the system keychain or an encrypted file.

When no client ID is given on the command line, you are prompted for it
without echo.`,
	Example: `  # Interactive prompt
  imgurgrab auth set

  # Non-interactive
  imgurgrab auth set 0123456789abcdef`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAuthSet,
}

// authShowCmd represents the auth show command
var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored credential (masked)",
	Run:   runAuthShow,
}

// authRemoveCmd represents the auth remove command
var authRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored credential",
	Run:   runAuthRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authRemoveCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	var clientID string
	if len(args) > 0 {
		clientID = strings.TrimSpace(args[0])
	} else {
		fmt.Print("imgur client ID: ")
		input, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			ui.PrintError("Failed to read client ID", err.Error())
			os.Exit(1)
		}
		clientID = strings.TrimSpace(string(input))
	}

	if clientID == "" {
		ui.PrintError("Client ID must not be empty", "")
		os.Exit(1)
	}

	if err := manager.Store(&auth.Credential{ClientID: clientID}); err != nil {
		ui.PrintError("Failed to store credential", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Credential stored.")
}

func runAuthShow(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	cred, err := manager.Retrieve()
	if err != nil {
		ui.PrintWarning("No credential stored")
		fmt.Println("Run 'imgurgrab auth set' to store one.")
		os.Exit(1)
	}

	ui.PrintInfo("Client ID", auth.MaskClientID(cred.ClientID))
	if !cred.LastModified.IsZero() {
		ui.PrintInfo("Last modified", cred.LastModified.Format("2006-01-02 15:04:05"))
	}
}

func runAuthRemove(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to remove credential", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Credential removed.")
}
