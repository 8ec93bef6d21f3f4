package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// modelPlaceholder in command arguments is replaced by the model identifier.
const modelPlaceholder = "{model}"

// Command runs an external tokenizer. The process receives the text on stdin
// and LEARNSUBS_MODEL in its environment, and must print a JSON array of
// tokens on stdout.
type Command struct {
	binary  string
	args    []string
	modelID string
	timeout time.Duration
}

// CommandLoader returns a Loader that wraps binary for every model. The
// binary is resolved on PATH when the model is loaded.
func CommandLoader(binary string, args []string, timeout time.Duration) Loader {
	return func(_ context.Context, modelID string) (Pipeline, error) {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return nil, fmt.Errorf("tokenizer command %q: %w", binary, err)
		}
		expanded := make([]string, len(args))
		for i, arg := range args {
			expanded[i] = strings.ReplaceAll(arg, modelPlaceholder, modelID)
		}
		return &Command{binary: resolved, args: expanded, modelID: modelID, timeout: timeout}, nil
	}
}

// Process runs the tokenizer process once for text.
func (c *Command) Process(ctx context.Context, text string) ([]Token, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, c.args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "LEARNSUBS_MODEL="+c.modelID)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("tokenizer %s: %w", c.modelID, ctxErr)
		}
		return nil, fmt.Errorf("tokenizer %s: %w: %s", c.modelID, err, strings.TrimSpace(stderr.String()))
	}

	var tokens []Token
	if err := json.Unmarshal(stdout.Bytes(), &tokens); err != nil {
		return nil, fmt.Errorf("tokenizer %s: decode output: %w", c.modelID, err)
	}
	return tokens, nil
}
