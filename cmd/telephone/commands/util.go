package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"

	"github.com/driftworks/telephone/pkg/cli"
	"github.com/driftworks/telephone/pkg/game"
	"github.com/driftworks/telephone/pkg/runstore"
)

// capabilities bundles the provider-specific pieces a command needs.
type capabilities struct {
	Generator game.Generator
	Analyzer  game.Analyzer

	// OpenAI is set only for the openai provider. The oracle's story and
	// narration backends have no gemini equivalent here.
	OpenAI *openai.Client
}

// buildCapabilities constructs the generation and analysis capabilities for
// the resolved context.
func buildCapabilities(ctx context.Context, cctx *cli.Context) (*capabilities, error) {
	apiKey := cctx.ResolveAPIKey()
	if apiKey == "" {
		switch cctx.ResolvedProvider() {
		case cli.ProviderGemini:
			return nil, fmt.Errorf("no API key: set api_key in context %q or GEMINI_API_KEY", cctx.Name)
		default:
			return nil, fmt.Errorf("no API key: set api_key in context %q or OPENAI_API_KEY", cctx.Name)
		}
	}

	paths := getPaths()
	if err := paths.EnsureImagesDir(); err != nil {
		return nil, err
	}

	switch cctx.ResolvedProvider() {
	case cli.ProviderOpenAI:
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if cctx.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cctx.BaseURL))
		}
		client := openai.NewClient(opts...)
		return &capabilities{
			Generator: &game.OpenAIGenerator{
				Client:       &client,
				Model:        openai.ImageModel(cctx.ImageModel),
				ArtifactsDir: paths.ImagesDir(),
			},
			Analyzer: &game.OpenAIAnalyzer{
				Client: &client,
				Model:  openai.ChatModel(cctx.VisionModel),
			},
			OpenAI: &client,
		}, nil

	case cli.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: apiKey,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return &capabilities{
			Generator: &game.GeminiGenerator{
				Client:       client,
				Model:        cctx.ImageModel,
				ArtifactsDir: paths.ImagesDir(),
			},
			Analyzer: &game.GeminiAnalyzer{
				Client: client,
				Model:  cctx.VisionModel,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q (want %q or %q)",
			cctx.Provider, cli.ProviderOpenAI, cli.ProviderGemini)
	}
}

// callTimeout returns the per-call timeout for the context.
func callTimeout(cctx *cli.Context) time.Duration {
	if cctx.Timeout > 0 {
		return time.Duration(cctx.Timeout) * time.Second
	}
	return game.DefaultCallTimeout
}

// openRunStore opens the on-disk run history database. Callers must Close it.
func openRunStore() (*runstore.Badger, error) {
	paths := getPaths()
	if err := paths.EnsureDataDir(); err != nil {
		return nil, err
	}
	return runstore.NewBadger(runstore.BadgerOptions{Dir: paths.DataDir()})
}
