package command

import (
	"context"
	"encoding/json"
	"fmt"

	"command-bridge/internal/model"
)

// Dispatch parses one client message and runs its command. It always returns
// exactly one stamped message; failures become "error" messages.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) model.Message {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		d.l.Warnf(ctx, "internal.command.Dispatch: invalid message: %v", err)
		return d.stamp(model.NewErrorMessage(MsgInvalidJSON))
	}

	name, _ := fields["command"].(string)
	delete(fields, "command")

	return d.Execute(ctx, name, Params(fields))
}

// Execute runs the named command with params.
func (d *Dispatcher) Execute(ctx context.Context, name string, params Params) (msg model.Message) {
	h, ok := d.handlers[name]
	if !ok {
		d.l.Infof(ctx, "internal.command.Execute: unknown command %q", name)
		return d.stamp(model.NewErrorMessage(fmt.Sprintf(MsgUnknownCommand, name)))
	}

	defer func() {
		if r := recover(); r != nil {
			d.l.Errorf(ctx, "internal.command.Execute: %s panicked: %v", name, r)
			msg = d.stamp(model.NewErrorMessage(fmt.Sprintf(MsgHandlerPanic, name)))
		}
	}()

	d.l.Infof(ctx, "internal.command.Execute: received command %s", name)

	if params == nil {
		params = Params{}
	}
	result, err := h.Execute(ctx, params)
	if err != nil {
		d.l.Warnf(ctx, "internal.command.Execute: %s failed: %v", name, err)
		return d.stamp(model.NewErrorMessage(err.Error()))
	}
	return d.stamp(result)
}

func (d *Dispatcher) stamp(m model.Message) model.Message {
	return m.Stamp(d.now())
}
