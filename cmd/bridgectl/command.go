package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"

	"command-bridge/internal/model"
)

func newCommandCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "command",
		Usage:     "send one command over the websocket bridge and print the reply",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "websocket endpoint",
				Value: defaultBridgeURL,
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   `extra fields as a JSON object, e.g. '{"size": 5000}'`,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "how long to wait for the reply",
				Value: 30 * time.Second,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			name := command.Args().First()
			if name == "" {
				return fmt.Errorf("command name is required")
			}

			msg := map[string]any{}
			if raw := command.String("params"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &msg); err != nil {
					return fmt.Errorf("params must be a JSON object: %w", err)
				}
			}
			msg["command"] = name

			ctx, cancel := context.WithTimeout(ctx, command.Duration("timeout"))
			defer cancel()

			reply, err := runCommand(ctx, command.String("url"), msg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(reply); err != nil {
				return err
			}
			if reply.IsError() {
				return fmt.Errorf("command %s failed: %v", name, reply.Payload["message"])
			}
			return nil
		},
	}
}

// runCommand connects, skips the greeting status message and any webhook broadcasts,
// and returns the reply to msg.
func runCommand(ctx context.Context, url string, msg map[string]any) (model.Message, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return model.Message{}, fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	var greeting model.Message
	if err := conn.ReadJSON(&greeting); err != nil {
		return model.Message{}, fmt.Errorf("read greeting: %w", err)
	}

	if err := conn.WriteJSON(msg); err != nil {
		return model.Message{}, fmt.Errorf("send command: %w", err)
	}

	var reply model.Message
	for {
		reply = model.Message{}
		if err := conn.ReadJSON(&reply); err != nil {
			return model.Message{}, fmt.Errorf("read reply: %w", err)
		}
		// broadcasts can interleave with the reply
		if reply.Type != model.MessageTypeWebhookReceived {
			break
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return reply, nil
}
