package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Config keys for the auth state.
const (
	keyAuthLoggedIn = "auth.logged_in"
	keyAuthEmail    = "auth.email"
	keyAuthAccount  = "auth.account_id"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the analytics service",
	Long: `Stores your identity locally. History is kept per identity, so logging
in with the same email on another machine does not share entries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the analytics service",
	Long: `Clears the stored identity. Query history is left untouched and becomes
visible again on the next login with the same email.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	email := ""
	if len(args) > 0 {
		email = strings.TrimSpace(args[0])
	}
	if email == "" {
		cmd.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %s", email)
	}

	cmd.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return errors.New("password must not be empty")
	}

	accountID := email[:strings.Index(email, "@")]
	if err := configStore.Set(keyAuthEmail, email); err != nil {
		return err
	}
	if err := configStore.Set(keyAuthAccount, accountID); err != nil {
		return err
	}
	if err := configStore.Set(keyAuthLoggedIn, true); err != nil {
		return err
	}

	cmd.Printf("Logged in as %s\n", email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if !configStore.GetBool(keyAuthLoggedIn) {
		cmd.Println("Not logged in.")
		return nil
	}

	// Auth state only. History stays on disk, keyed by identity.
	for _, key := range []string{keyAuthLoggedIn, keyAuthEmail, keyAuthAccount} {
		if err := configStore.Delete(key); err != nil {
			return err
		}
	}

	cmd.Println("Logged out.")
	return nil
}
