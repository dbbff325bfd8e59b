package commands

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/busybox42/edkey/internal/config"
)

func encode(encoding string, b []byte) string {
	if encoding == config.EncodingBase64 {
		return base64.StdEncoding.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}

func decode(encoding, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if encoding == config.EncodingBase64 {
		return base64.StdEncoding.DecodeString(s)
	}
	return hex.DecodeString(s)
}

// keyArg decodes the argument at index i, or reads size raw bytes from
// stdin when the argument was omitted.
func (a *app) keyArg(cmd *cobra.Command, args []string, i int, what string, size int) ([]byte, error) {
	if len(args) > i {
		b, err := decode(a.cfg.Output.Encoding, args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", what, err)
		}
		return b, nil
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(cmd.InOrStdin(), b); err != nil {
		return nil, fmt.Errorf("failed to read %s from stdin: %w", what, err)
	}
	return b, nil
}
