package commands

import (
	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/pkg/crypto"
)

func (a *app) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message> [private]",
		Short: "Sign a message",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := a.keyArg(cmd, args, 1, "private key", crypto.PrivateKeySize)
			if err != nil {
				return err
			}
			defer crypto.Wipe(priv)

			kp, err := crypto.NewKeyPairFromPrivateKey(priv)
			if err != nil {
				return err
			}
			defer kp.Release()

			signature, err := kp.Sign([]byte(args[0]))
			if err != nil {
				return err
			}

			a.log.WithField("fingerprint", kp.Fingerprint()).Debug("Signed message")
			return a.emit(cmd, "sig", signature)
		},
	}
}
