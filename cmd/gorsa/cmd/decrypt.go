package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt <private-key-file>",
	Short: "Decrypt a ciphertext with a private key",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decrypt(args[0])
	},
}

var (
	decryptKey keyFlags
	decryptIn  string
	decryptOut string
)

func init() {
	decryptKey.Register(decryptCmd.Flags())
	decryptCmd.Flags().StringVarP(&decryptIn, "in", "i", "", "ciphertext file (default stdin)")
	decryptCmd.Flags().StringVarP(&decryptOut, "out", "o", "", "message output file (default stdout)")

	rootCmd.AddCommand(decryptCmd)
}

func decrypt(keyPath string) error {
	priv, err := decryptKey.loadPrivate(keyPath)
	if err != nil {
		return err
	}

	ciphertext, err := readInput(decryptIn)
	if err != nil {
		return err
	}

	message, err := gorsa.Decrypt(ciphertext, priv)
	if err != nil {
		return err
	}

	return writeOutput(decryptOut, message)
}
