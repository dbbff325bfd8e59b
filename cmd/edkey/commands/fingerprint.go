package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/pkg/crypto"
)

func (a *app) fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [public]",
		Short: "Print the fingerprint of a public key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := a.keyArg(cmd, args, 0, "public key", crypto.PublicKeySize)
			if err != nil {
				return err
			}
			if len(pub) != crypto.PublicKeySize {
				return fmt.Errorf("%w: got %d bytes", crypto.ErrPublicKeySize, len(pub))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), crypto.Fingerprint(pub))
			return err
		},
	}
}
