package game

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

var (
	_ Generator = (*OpenAIGenerator)(nil)
	_ Analyzer  = (*OpenAIAnalyzer)(nil)
)

const (
	// DefaultImageModel is the image generation model used when none is set.
	DefaultImageModel = openai.ImageModelDallE3

	// DefaultVisionModel is the analysis model used when none is set.
	DefaultVisionModel = openai.ChatModelGPT4o

	// DefaultImageSize is the fixed output size for generated images.
	DefaultImageSize = openai.ImageGenerateParamsSize1024x1024

	// DefaultDescribeMaxTokens bounds the analyzer's output length.
	DefaultDescribeMaxTokens = 300
)

// defaultInstruction steers the analyzer towards descriptions that can seed
// the next generation without copying the previous prompt verbatim.
const defaultInstruction = "You are a creative and detailed image analyst. " +
	"Describe what you see in the image with vivid details that could be used " +
	"to recreate a similar but not identical image. Focus on the main elements, " +
	"colors, composition, and mood. Your description should be 3-4 sentences long."

const describeQuestion = "Describe this image in detail. What do you see?"

// OpenAIGenerator implements Generator using the OpenAI images API.
//
// Generated images are downloaded (or base64-decoded, depending on what the
// API returns) and persisted under ArtifactsDir before the reference is
// handed back, because the hosted URL expires upstream.
type OpenAIGenerator struct {
	Client *openai.Client

	// Model defaults to DefaultImageModel.
	Model openai.ImageModel

	// Size defaults to DefaultImageSize.
	Size openai.ImageGenerateParamsSize

	// ArtifactsDir is where persisted images go. Defaults to the working
	// directory.
	ArtifactsDir string

	// HTTPClient downloads URL-form results. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Generate generates one image from the prompt and persists a local copy.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (ImageRef, error) {
	if g.Client == nil {
		return ImageRef{}, errors.New("openai client is not configured")
	}
	model := g.Model
	if model == "" {
		model = DefaultImageModel
	}
	size := g.Size
	if size == "" {
		size = DefaultImageSize
	}

	params := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  model,
		N:      param.NewOpt(int64(1)),
		Size:   size,
	}
	resp, err := g.Client.Images.Generate(ctx, params)
	if err != nil {
		return ImageRef{}, fmt.Errorf("images.generate: %w", err)
	}
	if len(resp.Data) == 0 {
		return ImageRef{}, errors.New("images.generate: empty response")
	}
	img := resp.Data[0]

	var data []byte
	switch {
	case img.URL != "":
		data, err = fetchImage(ctx, g.HTTPClient, img.URL)
		if err != nil {
			return ImageRef{}, err
		}
	case img.B64JSON != "":
		data, err = base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return ImageRef{}, fmt.Errorf("decode image payload: %w", err)
		}
	default:
		return ImageRef{}, errors.New("images.generate: response has neither url nor payload")
	}

	path, err := saveArtifact(g.ArtifactsDir, data)
	if err != nil {
		return ImageRef{}, err
	}
	return ImageRef{Path: path, URL: img.URL}, nil
}

// OpenAIAnalyzer implements Analyzer using a vision-capable chat model.
type OpenAIAnalyzer struct {
	Client *openai.Client

	// Model defaults to DefaultVisionModel.
	Model openai.ChatModel

	// Instruction replaces the default system instruction when set.
	Instruction string

	// MaxTokens defaults to DefaultDescribeMaxTokens.
	MaxTokens int64
}

// Describe returns a short description of the referenced image. The hosted
// URL is preferred when present; otherwise the local copy is inlined as a
// base64 data URI so the backend can still reach it.
func (a *OpenAIAnalyzer) Describe(ctx context.Context, ref ImageRef) (string, error) {
	if a.Client == nil {
		return "", errors.New("openai client is not configured")
	}
	model := a.Model
	if model == "" {
		model = DefaultVisionModel
	}
	instruction := a.Instruction
	if instruction == "" {
		instruction = defaultInstruction
	}
	maxTokens := a.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultDescribeMaxTokens
	}

	imageURL, err := imageURLFor(ref)
	if err != nil {
		return "", err
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(describeQuestion),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: imageURL,
		}),
	}
	params := openai.ChatCompletionNewParams{
		Model:               model,
		MaxCompletionTokens: param.NewOpt(maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: param.NewOpt(instruction),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
	}

	resp, err := a.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat.completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat.completions: no choices")
	}
	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("chat.completions: blocked: %s", choice.Message.Refusal)
	}
	description := strings.TrimSpace(choice.Message.Content)
	if description == "" {
		return "", errors.New("chat.completions: empty description")
	}
	return description, nil
}

// imageURLFor picks the analyzer-reachable reference for an image: the hosted
// URL when the provider returned one, else the local bytes inlined as a data
// URI.
func imageURLFor(ref ImageRef) (string, error) {
	if ref.URL != "" {
		return ref.URL, nil
	}
	if ref.Path == "" {
		return "", errors.New("image reference has neither url nor path")
	}
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
