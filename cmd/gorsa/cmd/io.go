package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/sybrenstuvel/gorsa"
	"github.com/sybrenstuvel/gorsa/check"
)

// keyFlags holds the flags shared by every command that reads a key file.
type keyFlags struct {
	keyform string
}

// Register adds the shared key flags to a flag set.
func (f *keyFlags) Register(flags *pflag.FlagSet) {
	flags.StringVar(&f.keyform, "keyform", gorsa.FormatPEM, "key format (PEM or DER)")
}

func (f *keyFlags) loadPublic(path string) (*gorsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read key file")
	}
	return gorsa.LoadPublicKeyPKCS1(data, f.keyform)
}

func (f *keyFlags) loadPrivate(path string) (*gorsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read key file")
	}
	return gorsa.LoadPrivateKeyPKCS1(data, f.keyform)
}

// readInput reads the named file, or standard input when path is empty.
func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrap(err, "failed to read input")
}

// writeOutput writes data to the named file, or standard output when path
// is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if _, err := f.Write(data); err != nil {
		check.MustClose(f)
		return errors.Wrap(err, "failed to write output")
	}
	return f.Close()
}
