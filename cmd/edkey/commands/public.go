package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/pkg/crypto"
)

func (a *app) publicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "public [private]",
		Short: "Print the public key for a private seed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := a.keyArg(cmd, args, 0, "private key", crypto.PrivateKeySize)
			if err != nil {
				return err
			}
			defer crypto.Wipe(priv)

			pub, err := crypto.PublicKeyFromPrivate(priv)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), encode(a.cfg.Output.Encoding, pub))
			return err
		},
	}
}
