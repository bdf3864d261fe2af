package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
)

// priv2pubCmd represents the priv2pub command
var priv2pubCmd = &cobra.Command{
	Use:   "priv2pub <private-key-file>",
	Short: "Extract the public key from a private key",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return priv2pub(args[0])
	},
}

var (
	priv2pubInform  string
	priv2pubOutform string
	priv2pubOut     string
)

func init() {
	priv2pubCmd.Flags().StringVar(&priv2pubInform, "inform", gorsa.FormatPEM, "input format (PEM or DER)")
	priv2pubCmd.Flags().StringVar(&priv2pubOutform, "outform", gorsa.FormatPEM, "output format (PEM or DER)")
	priv2pubCmd.Flags().StringVarP(&priv2pubOut, "out", "o", "", "public key output file (default stdout)")

	rootCmd.AddCommand(priv2pubCmd)
}

func priv2pub(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read key file")
	}

	priv, err := gorsa.LoadPrivateKeyPKCS1(data, priv2pubInform)
	if err != nil {
		return err
	}

	out, err := priv.PublicKey.SavePKCS1(priv2pubOutform)
	if err != nil {
		return err
	}

	return writeOutput(priv2pubOut, out)
}
