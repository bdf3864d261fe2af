package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
)

// signCmd represents the sign command
var signCmd = &cobra.Command{
	Use:   "sign <private-key-file> <hash-method>",
	Short: "Sign a message with a private key",
	Long: `Sign reads a message from a file or standard input and writes a
detached PKCS#1 v1.5 signature over its digest. Supported hash methods:
MD5, SHA-1, SHA-224, SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-384 and
SHA3-512. MD5 and SHA-1 are broken; avoid them for new signatures.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sign(args[0], args[1])
	},
}

var (
	signKey keyFlags
	signIn  string
	signOut string
)

func init() {
	signKey.Register(signCmd.Flags())
	signCmd.Flags().StringVarP(&signIn, "in", "i", "", "message file (default stdin)")
	signCmd.Flags().StringVarP(&signOut, "out", "o", "", "signature output file (default stdout)")

	rootCmd.AddCommand(signCmd)
}

func sign(keyPath, hashMethod string) error {
	priv, err := signKey.loadPrivate(keyPath)
	if err != nil {
		return err
	}

	message, err := readInput(signIn)
	if err != nil {
		return err
	}

	signature, err := gorsa.Sign(message, priv, hashMethod)
	if err != nil {
		return err
	}

	return writeOutput(signOut, signature)
}
