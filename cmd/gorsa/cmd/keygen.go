package cmd

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa"
	"github.com/sybrenstuvel/gorsa/check"
	"github.com/sybrenstuvel/gorsa/log"
	"github.com/sybrenstuvel/gorsa/telemetry"
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen <bits>",
	Short: "Generate a new RSA key pair",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(errUsage, "key size %q is not a number", args[0])
		}
		return keygen(bits)
	},
}

var (
	keygenOut      string
	keygenPubOut   string
	keygenForm     string
	keygenExponent int
	keygenFast     bool
	keygenTimeout  time.Duration
	keygenVerbose  bool
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "", "private key output file (default stdout)")
	keygenCmd.Flags().StringVar(&keygenPubOut, "pubout", "", "public key output file")
	keygenCmd.Flags().StringVar(&keygenForm, "form", gorsa.FormatPEM, "output format (PEM or DER)")
	keygenCmd.Flags().IntVar(&keygenExponent, "exponent", gorsa.DefaultExponent, "public exponent")
	keygenCmd.Flags().BoolVar(&keygenFast, "fast", false, "allow the modulus to fall one bit short")
	keygenCmd.Flags().DurationVar(&keygenTimeout, "timeout", 0, "abort generation after this duration")
	keygenCmd.Flags().BoolVarP(&keygenVerbose, "verbose", "v", false, "log progress and metrics")

	rootCmd.AddCommand(keygenCmd)
}

func keygenLogger() log.Logger {
	if !keygenVerbose {
		return log.NewNop()
	}
	base := log15.New()
	base.SetHandler(log15.LvlFilterHandler(log15.LvlDebug,
		log15.StreamHandler(os.Stderr, log15.TerminalFormat()),
	))
	return log.NewLog15(base)
}

func keygen(bits int) error {
	l := log.ForComponent(keygenLogger(), "keygen")

	scope, closer := telemetry.NewScope("gorsa", l)
	defer check.Close(l, closer)
	search := telemetry.NewPrimeSearch(scope)

	ctx := context.Background()
	if keygenTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, keygenTimeout)
		defer cancel()
	}

	opts := []gorsa.KeyGenOption{
		gorsa.WithExponent(keygenExponent),
		gorsa.WithPrimeSearchRecorder(search),
	}
	if keygenFast {
		opts = append(opts, gorsa.WithFastMode())
	}

	start := time.Now()
	pub, priv, err := gorsa.NewKeys(ctx, bits, opts...)
	if err != nil {
		return err
	}
	l.Info("generated key pair",
		"bits", bits,
		"candidates", search.Attempts(),
		"duration", time.Since(start),
	)

	privBytes, err := priv.SavePKCS1(keygenForm)
	if err != nil {
		return err
	}
	if err := writeOutput(keygenOut, privBytes); err != nil {
		return err
	}
	if keygenOut != "" {
		// Key material should not be world readable.
		if err := os.Chmod(keygenOut, 0600); err != nil {
			return err
		}
	}

	if keygenPubOut != "" {
		pubBytes, err := pub.SavePKCS1(keygenForm)
		if err != nil {
			return err
		}
		if err := writeOutput(keygenPubOut, pubBytes); err != nil {
			return err
		}
	}

	return nil
}
