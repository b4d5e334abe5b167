// Package openai provides a model.Classifier backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/model"
)

// Options configure the OpenAI classifier. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Classifier wraps the OpenAI Chat Completions API behind the generic
// model.Classifier interface.
type Classifier struct {
	client *openai.Client
	opts   Options
}

// NewClassifier creates a new OpenAI classifier using the official client.
func NewClassifier(optFns ...func(o *Options)) *Classifier {
	client := openai.NewClient()
	return NewClassifierFromClient(&client, optFns...)
}

// NewClassifierFromClient creates a new OpenAI classifier from an existing client.
func NewClassifierFromClient(client *openai.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.0,
		MaxCompletionTokens: 256,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify asks the model to route the input and parses its JSON verdict.
func (c *Classifier) Classify(ctx context.Context, req model.Request) (*core.Decision, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(model.SystemPrompt(req)),
			openai.UserMessage(req.Input),
		},
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	return model.ParseDecision(resp.Choices[0].Message.Content)
}
