package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/pkg/crypto"
)

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a key pair",
		Long: `Generate a fresh Ed25519 key pair.

On a terminal the private seed, public key and fingerprint are printed. When
stdout is redirected only the raw 32 byte seed is written to it and the
public key goes to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			defer kp.Release()

			pub := make([]byte, crypto.PublicKeySize)
			priv := make([]byte, crypto.PrivateKeySize)
			if err := kp.ExportKeys(pub, priv); err != nil {
				return err
			}
			defer crypto.Wipe(priv)

			fp := crypto.Fingerprint(pub)
			a.log.WithField("fingerprint", fp).Debug("Generated key pair")

			if err := a.emit(cmd, "priv", priv); err != nil {
				return err
			}

			info := cmd.OutOrStdout()
			if !a.textOutput(info) {
				info = cmd.ErrOrStderr()
			}
			_, err = fmt.Fprintf(info, "%-5s%s\n%-5s%s\n", "pub", encode(a.cfg.Output.Encoding, pub), "fp", fp)
			return err
		},
	}
}
