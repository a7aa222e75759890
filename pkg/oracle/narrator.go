package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/openai/openai-go"

	"github.com/driftworks/telephone/pkg/game"
)

// DefaultVoices is the narration voice preference list, tried in order. The
// exotic entries are rejected by most deployments; the list always ends in a
// voice the API actually ships.
var DefaultVoices = []string{"baby", "highpitched-baby", "alloy"}

// SpeechSynthesizer turns text into audio bytes with a given voice.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, voice, text string) ([]byte, error)
}

// OpenAISpeech implements SpeechSynthesizer using the OpenAI TTS API.
type OpenAISpeech struct {
	Client *openai.Client

	// Model defaults to tts-1.
	Model openai.SpeechModel
}

// Synthesize renders text to audio with the given voice.
func (s *OpenAISpeech) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	if s.Client == nil {
		return nil, errors.New("openai client is not configured")
	}
	model := s.Model
	if model == "" {
		model = openai.SpeechModelTTS1
	}
	resp, err := s.Client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: model,
		Voice: openai.AudioSpeechNewParamsVoice(voice),
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("audio.speech: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio body: %w", err)
	}
	return data, nil
}

// Narrator renders stories to audio files, walking an ordered voice
// preference list until one is accepted.
type Narrator struct {
	// Speech is the synthesis backend. Required.
	Speech SpeechSynthesizer

	// Voices defaults to DefaultVoices.
	Voices []string

	// AudioDir is where narration files go. Defaults to the working
	// directory.
	AudioDir string
}

// Narrate synthesizes the story and writes it to an mp3 under AudioDir,
// returning the file path and the voice that was accepted. When every voice
// is rejected, the last synthesis failure is returned.
func (n *Narrator) Narrate(ctx context.Context, story string) (path, voice string, err error) {
	if n.Speech == nil {
		return "", "", errors.New("narrator: no speech synthesizer configured")
	}
	if story == "" {
		return "", "", errors.New("narrator: story must not be empty")
	}
	voices := n.Voices
	if len(voices) == 0 {
		voices = DefaultVoices
	}

	data, voice, err := game.TryEach(ctx, voices, func(ctx context.Context, v string) ([]byte, error) {
		return n.Speech.Synthesize(ctx, v, story)
	})
	if err != nil {
		return "", "", fmt.Errorf("narrator: all voices rejected: %w", err)
	}

	dir := n.AudioDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("narrator: create audio dir: %w", err)
	}
	path = filepath.Join(dir, fmt.Sprintf("past_life_story_%d.mp3", time.Now().UnixNano()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", "", fmt.Errorf("narrator: write audio: %w", err)
	}
	return path, voice, nil
}
