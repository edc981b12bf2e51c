package main

import (
	"io"

	"github.com/urfave/cli/v3"
)

const (
	defaultWebhookURL = "http://localhost:8081/webhook"
	defaultBridgeURL  = "ws://localhost:8081/ws"
)

// newApp builds the bridgectl command tree reading payloads from in and printing to out.
func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "bridgectl",
		Usage: "developer client for the command bridge",
		Commands: []*cli.Command{
			newSignCommand(in, out),
			newSendWebhookCommand(in, out),
			newCommandCommand(out),
		},
	}
}
