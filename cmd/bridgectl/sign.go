package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"command-bridge/internal/webhook"
)

func newSignCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "print the X-Hub-Signature-256 value for a payload",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Aliases:  []string{"s"},
				Usage:    "webhook secret",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "payload file, stdin when empty",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			payload, err := readPayload(in, command.String("file"))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, webhook.Sign([]byte(command.String("secret")), payload))
			return err
		},
	}
}

func readPayload(in io.Reader, path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(in)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}
