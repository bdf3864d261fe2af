package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errUsage marks failures caused by bad command-line arguments. They exit
// with status 2; operational failures exit with status 1.
var errUsage = errors.New("usage error")

var rootCmd = &cobra.Command{
	Use:           "gorsa",
	Short:         "RSA key generation, encryption and signing (PKCS#1 v1.5)",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errUsage, err.Error())
	})
}

// exactArgs validates positional argument count, reporting violations as
// usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Wrapf(errUsage, "expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

// Execute is the entry point for the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gorsa:", err)
		if errors.Cause(err) == errUsage {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
