package game

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ImageRef identifies a generated image. Path is the local persisted copy and
// is always set; URL is the provider's remote reference and may be empty or
// expire upstream, so anything that must outlive the run reads Path.
type ImageRef struct {
	// Path is the local file the image bytes were persisted to.
	Path string

	// URL is the provider-hosted reference, if the provider returned one.
	URL string
}

// Generator turns a text prompt into an image artifact. Implementations must
// persist a local copy of the image in addition to any remote reference.
type Generator interface {
	Generate(ctx context.Context, prompt string) (ImageRef, error)
}

// Analyzer turns an image into a short natural-language description,
// 3-4 sentences in the default configuration.
type Analyzer interface {
	Describe(ctx context.Context, ref ImageRef) (string, error)
}

// Recorder receives terminal sessions for run history. Saving is best-effort
// from the orchestrator's point of view; a failed save does not change the
// session outcome.
type Recorder interface {
	Save(ctx context.Context, s *Session) error
}

// saveArtifact writes image bytes to a new file under dir. The filename
// embeds nanosecond time so back-to-back generations never overwrite each
// other. The directory is created on demand.
func saveArtifact(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("image_%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// fetchImage downloads image bytes from a provider-hosted URL.
func fetchImage(ctx context.Context, hc *http.Client, url string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}
