package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"command-bridge/internal/webhook"
)

func newSendWebhookCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "send-webhook",
		Usage: "sign a payload and POST it as a GitHub delivery",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "webhook endpoint",
				Value: defaultWebhookURL,
			},
			&cli.StringFlag{
				Name:     "secret",
				Aliases:  []string{"s"},
				Usage:    "webhook secret",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Usage:   "X-GitHub-Event value",
				Value:   "ping",
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

			status, body, err := sendWebhook(ctx, command.String("url"), []byte(command.String("secret")), command.String("event"), payload)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%d %s\n", status, body)
			if status != http.StatusOK {
				return fmt.Errorf("webhook rejected with status %d", status)
			}
			return nil
		},
	}
}

func sendWebhook(ctx context.Context, url string, secret []byte, event string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderEvent, event)
	req.Header.Set(webhook.HeaderDelivery, uuid.NewString())
	req.Header.Set(webhook.HeaderSignature, webhook.Sign(secret, payload))

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, bytes.TrimSpace(body), nil
}
