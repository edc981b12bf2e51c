package command

import (
	"context"
	"fmt"
	"math"

	"command-bridge/internal/model"
)

// Command names recognised by the default dispatch table.
const (
	NameStatus        = "status"
	NameQuickTest     = "quick_test"
	NameAIAnalysis    = "ai_analysis"
	NameGitHubWebhook = "github_webhook"
	NameProcessFiles  = "process_files"
)

// Handler executes one command.
type Handler interface {
	// Name returns the command name clients send in "command".
	Name() string

	// Execute runs the command with the message fields minus "command".
	Execute(ctx context.Context, params Params) (model.Message, error)
}

// Params is the opaque parameter bag of a command message.
type Params map[string]any

// Int reads an integral JSON number. ok is false when the key is absent.
func (p Params) Int(key string) (v int, ok bool, err error) {
	raw, present := p[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	f, isNum := raw.(float64)
	if !isNum {
		return 0, true, fmt.Errorf("%w: %s must be a number", ErrInvalidParam, key)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, true, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, key)
	}
	return int(f), true, nil
}

// String reads a string field, returning def when absent.
func (p Params) String(key, def string) (string, error) {
	raw, present := p[key]
	if !present || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidParam, key)
	}
	return s, nil
}

// Strings reads an array of strings.
func (p Params) Strings(key string) ([]string, error) {
	raw, present := p[key]
	if !present || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of strings", ErrInvalidParam, key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrInvalidParam, key, i)
		}
		out = append(out, s)
	}
	return out, nil
}
