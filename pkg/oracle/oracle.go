// Package oracle tells past-life fortunes: a humorous story for a name, a
// portrait of the person's past-life appearance, and an optional spoken
// narration of the story.
//
// The portrait goes through the same generation capability as the telephone
// game, so any configured provider works. Narration and playback are
// best-effort subsystems: they report unavailability instead of silently
// degrading, and the caller decides whether that is fatal.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"

	"github.com/driftworks/telephone/pkg/game"
)

const (
	// DefaultStoryModel is the chat model used for stories when none is set.
	DefaultStoryModel = openai.ChatModelGPT4

	// DefaultStoryMaxTokens bounds the story length.
	DefaultStoryMaxTokens = 400

	// DefaultStoryTemperature keeps the stories varied between readings.
	DefaultStoryTemperature = 0.8
)

const storytellerInstruction = "You are a creative storyteller specializing in humorous past life narratives."

// Oracle produces past-life readings.
type Oracle struct {
	Client *openai.Client

	// Portraits generates the past-life portrait. Required for Portrait.
	Portraits game.Generator

	// StoryModel defaults to DefaultStoryModel.
	StoryModel openai.ChatModel
}

// Tell generates a humorous past-life story for the given name.
func (o *Oracle) Tell(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("oracle: name must not be empty")
	}
	if o.Client == nil {
		return "", errors.New("oracle: openai client is not configured")
	}
	model := o.StoryModel
	if model == "" {
		model = DefaultStoryModel
	}

	params := openai.ChatCompletionNewParams{
		Model:               model,
		MaxCompletionTokens: param.NewOpt(int64(DefaultStoryMaxTokens)),
		Temperature:         param.NewOpt(DefaultStoryTemperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: param.NewOpt(storytellerInstruction),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.NewOpt(storyPrompt(name)),
					},
				},
			},
		},
	}
	resp, err := o.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("oracle: tell story: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("oracle: tell story: no choices")
	}
	story := strings.TrimSpace(resp.Choices[0].Message.Content)
	if story == "" {
		return "", errors.New("oracle: tell story: empty story")
	}
	return story, nil
}

// Portrait generates a portrait of the person's past-life appearance and
// returns the local path of the persisted image.
func (o *Oracle) Portrait(ctx context.Context, name string) (game.ImageRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return game.ImageRef{}, errors.New("oracle: name must not be empty")
	}
	if o.Portraits == nil {
		return game.ImageRef{}, errors.New("oracle: portrait generator is not configured")
	}
	ref, err := o.Portraits.Generate(ctx, portraitPrompt(name))
	if err != nil {
		return game.ImageRef{}, fmt.Errorf("oracle: portrait: %w", err)
	}
	return ref, nil
}

func storyPrompt(name string) string {
	return fmt.Sprintf("Create a funny and entertaining description of who %s was in their past life. "+
		"Include details about their occupation, personality, and some amusing anecdotes. "+
		"Make it humorous and engaging.", name)
}

func portraitPrompt(name string) string {
	return fmt.Sprintf("Generate a realistic portrait of how %s looked in their past life. "+
		"Show their face clearly with appropriate historical clothing and background.", name)
}
