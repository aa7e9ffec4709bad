package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bindays/internal/adapters/driven/accesscode"
)

var hashCodeCmd = &cobra.Command{
	Use:   "hash-code",
	Short: "Hash an access code for BINS_ACCESS_CODE",
	Long: `Reads an access code and prints its argon2id hash. Store the hash in
BINS_ACCESS_CODE (or access_code in the settings file) instead of the plain
code. On a terminal the code is read without echo and must be entered twice;
otherwise the first line of stdin is used.`,
	Args: cobra.NoArgs,
	RunE: runHashCode,
}

func init() {
	rootCmd.AddCommand(hashCodeCmd)
}

// Terminal access, replaced in tests.
var (
	stdinFd    = int(os.Stdin.Fd())
	isTerminal = term.IsTerminal
	readSecret = term.ReadPassword
)

func runHashCode(cmd *cobra.Command, _ []string) error {
	code, err := readCode(cmd)
	if err != nil {
		return err
	}
	if code == "" {
		return errors.New("access code must not be empty")
	}

	hash, err := accesscode.HashCode(code)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func readCode(cmd *cobra.Command) (string, error) {
	if !isTerminal(stdinFd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read access code: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	prompt := cmd.ErrOrStderr()
	fmt.Fprint(prompt, "Access code: ")
	first, err := readSecret(stdinFd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read access code: %w", err)
	}

	fmt.Fprint(prompt, "Confirm: ")
	second, err := readSecret(stdinFd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read access code: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("access codes do not match")
	}
	return string(first), nil
}
