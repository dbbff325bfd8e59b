package main

import (
	"os"

	"github.com/busybox42/edkey/cmd/edkey/commands"
)

func main() {
	os.Exit(commands.Execute())
}
