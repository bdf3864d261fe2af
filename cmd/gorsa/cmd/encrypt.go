package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt <public-key-file>",
	Short: "Encrypt a message with a public key",
	Long: `Encrypt reads a message from a file or standard input and writes the
PKCS#1 v1.5 ciphertext. The message can be at most the key length in
bytes minus 11.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return encrypt(args[0])
	},
}

var (
	encryptKey keyFlags
	encryptIn  string
	encryptOut string
)

func init() {
	encryptKey.Register(encryptCmd.Flags())
	encryptCmd.Flags().StringVarP(&encryptIn, "in", "i", "", "message file (default stdin)")
	encryptCmd.Flags().StringVarP(&encryptOut, "out", "o", "", "ciphertext output file (default stdout)")

	rootCmd.AddCommand(encryptCmd)
}

func encrypt(keyPath string) error {
	pub, err := encryptKey.loadPublic(keyPath)
	if err != nil {
		return err
	}

	message, err := readInput(encryptIn)
	if err != nil {
		return err
	}

	ciphertext, err := gorsa.Encrypt(message, pub)
	if err != nil {
		return err
	}

	return writeOutput(encryptOut, ciphertext)
}
