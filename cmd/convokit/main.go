// Command convokit starts an interactive REPL around a single orchestrator
// instance. Configuration comes from the environment; when an OpenAI or
// Anthropic API key is present the matching model-backed intent classifier
// is registered in addition to the substring tool matcher.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/chzyer/readline"

	"github.com/hupe1980/convokit/agent"
	"github.com/hupe1980/convokit/intent"
	"github.com/hupe1980/convokit/logging"
	"github.com/hupe1980/convokit/model"
	"github.com/hupe1980/convokit/model/anthropic"
	"github.com/hupe1980/convokit/model/openai"
	"github.com/hupe1980/convokit/tool"
)

type config struct {
	Name          string  `env:"CONVOKIT_NAME" envDefault:"convokit"`
	Version       string  `env:"CONVOKIT_VERSION" envDefault:"0.1.0"`
	Description   string  `env:"CONVOKIT_DESCRIPTION" envDefault:"A demo conversational agent"`
	MinConfidence float64 `env:"CONVOKIT_MIN_CONFIDENCE" envDefault:"0.7"`
	LogLevel      string  `env:"CONVOKIT_LOG_LEVEL" envDefault:"warn"`
	OpenAIKey     string  `env:"OPENAI_API_KEY"`
	AnthropicKey  string  `env:"ANTHROPIC_API_KEY"`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := agent.New(cfg.Name, cfg.Version, func(o *agent.Options) {
		o.Description = cfg.Description
		o.MinConfidence = cfg.MinConfidence
		o.Logger = logging.NewSlogLogger(logLevel(cfg.LogLevel), "text")
		o.DefaultPrompts = map[string]string{
			agent.TemplateGreeting: "Hello! I'm {{name}} v{{version}}: {{description}}",
		}
	})
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	a.RegisterTool(tool.NewFunctionTool(
		"get_weather",
		"Get current weather information for a city",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string"},
			},
			"required": []string{"city"},
		},
		func(_ context.Context, args map[string]any) (string, error) {
			city, _ := args["city"].(string)
			return fmt.Sprintf("Partly cloudy, 21.5C in %s", city), nil
		},
	))

	a.RegisterIntentHandler(intent.NewToolMatchHandler(a.Tools))

	switch {
	case cfg.OpenAIKey != "":
		a.RegisterIntentHandler(model.NewHandler(openai.NewClassifier(), a.Tools))
	case cfg.AnthropicKey != "":
		classifier := anthropic.NewClassifier(func(o *anthropic.Options) { o.APIKey = cfg.AnthropicKey })
		a.RegisterIntentHandler(model.NewHandler(classifier, a.Tools))
	}

	rl, err := readline.New("you> ")
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	fmt.Printf("%s v%s — type /reset to clear, /quit to exit\n", a.Name(), a.Version())

	ctx := context.Background()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalf("read: %v", err)
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "/quit":
			return
		case "/reset":
			a.Reset()
			fmt.Println("conversation cleared")
			continue
		}

		resp := a.HandleTurn(ctx, input)
		fmt.Printf("%s> %s\n", a.Name(), resp.Content)
	}
}

func logLevel(s string) logging.LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return logging.LogLevelDebug
	case "info":
		return logging.LogLevelInfo
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelWarn
	}
}
