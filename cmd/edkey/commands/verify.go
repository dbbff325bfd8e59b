package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/pkg/crypto"
)

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <message> <public> <signature>",
		Short: "Verify a signature",
		Long: `Verify a signature over a message.

Exit status is 0 for a valid signature, 1 for an invalid one and 2 when
validity cannot be determined, for example for a malformed public key.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := decode(a.cfg.Output.Encoding, args[1])
			if err != nil {
				return &exitStatus{code: exitError, err: fmt.Errorf("invalid public key: %w", err)}
			}
			sig, err := decode(a.cfg.Output.Encoding, args[2])
			if err != nil {
				return &exitStatus{code: exitError, err: fmt.Errorf("invalid signature: %w", err)}
			}

			verdict, err := crypto.Verify(pub, []byte(args[0]), sig)
			fmt.Fprintln(cmd.OutOrStdout(), verdict)

			switch verdict {
			case crypto.VerdictValid:
				return nil
			case crypto.VerdictInvalid:
				a.log.WithField("fingerprint", crypto.Fingerprint(pub)).Debug("Signature rejected")
				return &exitStatus{code: exitInvalid}
			default:
				return &exitStatus{code: exitError, err: err}
			}
		},
	}
}
