// Package anthropic provides a model.Classifier backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/model"
)

// Options configure the Anthropic classifier (model id, max tokens, API key).
type Options struct {
	Model     anthropic.Model
	MaxTokens int64
	APIKey    string
}

// Classifier wraps the Anthropic Messages API behind the generic
// model.Classifier interface.
type Classifier struct {
	client *anthropic.Client
	opts   Options
}

// NewClassifier creates a new Anthropic classifier using the official client.
func NewClassifier(optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 256,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Classifier{client: &client, opts: opts}
}

// NewClassifierFromClient creates a new Anthropic classifier from an existing client.
func NewClassifierFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 256,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify asks the model to route the input and parses its JSON verdict.
func (c *Classifier) Classify(ctx context.Context, req model.Request) (*core.Decision, error) {
	params := anthropic.MessageNewParams{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		System:    []anthropic.TextBlockParam{{Text: model.SystemPrompt(req)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Input)),
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	return model.ParseDecision(sb.String())
}
