package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/riordanpawley/daybook/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	passwordStdin bool
	registerName  string
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and remember the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)

	loginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name for the new account")
	registerCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
}

func runLogin(cmd *cobra.Command, args []string) error {
	deps, err := scriptDeps()
	if err != nil {
		return err
	}
	password, err := readPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	return cli.LoginCommand(cmd.Context(), deps, cmd.OutOrStdout(), args[0], password)
}

func runRegister(cmd *cobra.Command, args []string) error {
	deps, err := scriptDeps()
	if err != nil {
		return err
	}
	password, err := readPassword(cmd, "Choose a password: ")
	if err != nil {
		return err
	}
	return cli.RegisterCommand(cmd.Context(), deps, cmd.OutOrStdout(), registerName, args[0], password)
}

func runLogout(cmd *cobra.Command, args []string) error {
	deps, err := scriptDeps()
	if err != nil {
		return err
	}
	return cli.LogoutCommand(deps, cmd.OutOrStdout())
}

// readPassword prompts without echo on a terminal, otherwise reads one line
// from stdin.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !passwordStdin && term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
