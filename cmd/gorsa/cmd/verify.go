package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <public-key-file> <signature-file>",
	Short: "Verify a signature against a message",
	Long: `Verify reads a message from a file or standard input and checks the
detached signature against it. The hash method is recovered from the
signature and printed on success.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return verify(args[0], args[1])
	},
}

var (
	verifyKey keyFlags
	verifyIn  string
)

func init() {
	verifyKey.Register(verifyCmd.Flags())
	verifyCmd.Flags().StringVarP(&verifyIn, "in", "i", "", "message file (default stdin)")

	rootCmd.AddCommand(verifyCmd)
}

func verify(keyPath, signaturePath string) error {
	pub, err := verifyKey.loadPublic(keyPath)
	if err != nil {
		return err
	}

	signature, err := os.ReadFile(signaturePath)
	if err != nil {
		return errors.Wrap(err, "failed to read signature file")
	}

	message, err := readInput(verifyIn)
	if err != nil {
		return err
	}

	method, err := gorsa.Verify(message, signature, pub)
	if err != nil {
		return err
	}

	fmt.Println(method)
	return nil
}
