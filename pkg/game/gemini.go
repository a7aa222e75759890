package game

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

var (
	_ Generator = (*GeminiGenerator)(nil)
	_ Analyzer  = (*GeminiAnalyzer)(nil)
)

const (
	// DefaultGeminiImageModel is the Imagen model used when none is set.
	DefaultGeminiImageModel = "imagen-3.0-generate-002"

	// DefaultGeminiVisionModel is the analysis model used when none is set.
	DefaultGeminiVisionModel = "gemini-2.0-flash"
)

// GeminiGenerator implements Generator using the Gemini Imagen API.
//
// Imagen returns raw image bytes, so the persisted local copy is the only
// reference; ImageRef.URL stays empty and analyzers fall back to inlining.
type GeminiGenerator struct {
	Client *genai.Client

	// Model defaults to DefaultGeminiImageModel.
	Model string

	// ArtifactsDir is where persisted images go. Defaults to the working
	// directory.
	ArtifactsDir string
}

// Generate generates one image from the prompt and persists it.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (ImageRef, error) {
	if g.Client == nil {
		return ImageRef{}, errors.New("gemini client is not configured")
	}
	model := g.Model
	if model == "" {
		model = DefaultGeminiImageModel
	}

	resp, err := g.Client.Models.GenerateImages(ctx, model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return ImageRef{}, fmt.Errorf("models.generate_images: %w", unwrapAPIError(err))
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return ImageRef{}, errors.New("models.generate_images: empty response")
	}

	path, err := saveArtifact(g.ArtifactsDir, resp.GeneratedImages[0].Image.ImageBytes)
	if err != nil {
		return ImageRef{}, err
	}
	return ImageRef{Path: path}, nil
}

// GeminiAnalyzer implements Analyzer using a Gemini multimodal model.
type GeminiAnalyzer struct {
	Client *genai.Client

	// Model defaults to DefaultGeminiVisionModel.
	Model string

	// Instruction replaces the default system instruction when set.
	Instruction string

	// MaxTokens defaults to DefaultDescribeMaxTokens.
	MaxTokens int32

	// HTTPClient downloads URL-only references. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Describe returns a short description of the referenced image. Gemini takes
// inline bytes, so the local copy is preferred and a URL-only reference is
// downloaded first.
func (a *GeminiAnalyzer) Describe(ctx context.Context, ref ImageRef) (string, error) {
	if a.Client == nil {
		return "", errors.New("gemini client is not configured")
	}
	model := a.Model
	if model == "" {
		model = DefaultGeminiVisionModel
	}
	instruction := a.Instruction
	if instruction == "" {
		instruction = defaultInstruction
	}
	maxTokens := a.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultDescribeMaxTokens
	}

	data, err := a.imageBytes(ctx, ref)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(describeQuestion),
			genai.NewPartFromBytes(data, "image/png"),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		MaxOutputTokens:   maxTokens,
	}
	resp, err := a.Client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("models.generate_content: %w", unwrapAPIError(err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("models.generate_content: no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	description := strings.TrimSpace(sb.String())
	if description == "" {
		return "", errors.New("models.generate_content: empty description")
	}
	return description, nil
}

func (a *GeminiAnalyzer) imageBytes(ctx context.Context, ref ImageRef) ([]byte, error) {
	if ref.Path != "" {
		data, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return data, nil
	}
	if ref.URL != "" {
		return fetchImage(ctx, a.HTTPClient, ref.URL)
	}
	return nil, errors.New("image reference has neither path nor url")
}

// unwrapAPIError strips the gax wrapper so callers see the service error.
func unwrapAPIError(err error) error {
	if e, ok := err.(*apierror.APIError); ok {
		return e.Unwrap()
	}
	return err
}
