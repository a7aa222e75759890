package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/driftworks/telephone/pkg/game"
)

type stubSpeech struct {
	accept map[string]bool
	tried  []string
}

func (s *stubSpeech) Synthesize(_ context.Context, voice, _ string) ([]byte, error) {
	s.tried = append(s.tried, voice)
	if !s.accept[voice] {
		return nil, fmt.Errorf("voice %q rejected", voice)
	}
	return []byte("mp3 bytes"), nil
}

func TestNarrator_VoiceFallback(t *testing.T) {
	speech := &stubSpeech{accept: map[string]bool{"alloy": true}}
	n := &Narrator{
		Speech:   speech,
		AudioDir: t.TempDir(),
	}

	path, voice, err := n.Narrate(context.Background(), "once upon a time")
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if voice != "alloy" {
		t.Errorf("accepted voice = %q, want %q", voice, "alloy")
	}
	// The full preference list was walked in order before alloy won.
	want := []string{"baby", "highpitched-baby", "alloy"}
	if len(speech.tried) != len(want) {
		t.Fatalf("tried %v, want %v", speech.tried, want)
	}
	for i := range want {
		if speech.tried[i] != want[i] {
			t.Errorf("tried[%d] = %q, want %q", i, speech.tried[i], want[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read narration: %v", err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("narration content = %q", data)
	}
	if !strings.HasSuffix(path, ".mp3") {
		t.Errorf("narration path = %q, want .mp3", path)
	}
}

func TestNarrator_AllVoicesRejected(t *testing.T) {
	speech := &stubSpeech{accept: map[string]bool{}}
	n := &Narrator{
		Speech:   speech,
		Voices:   []string{"first", "second"},
		AudioDir: t.TempDir(),
	}

	_, _, err := n.Narrate(context.Background(), "a story")
	if err == nil {
		t.Fatal("Narrate succeeded with every voice rejected")
	}
	// The last failure is the one surfaced.
	if !strings.Contains(err.Error(), `"second"`) {
		t.Errorf("err = %v, want last voice's failure", err)
	}
}

func TestNarrator_RequiresStoryAndSpeech(t *testing.T) {
	n := &Narrator{Speech: &stubSpeech{}, AudioDir: t.TempDir()}
	if _, _, err := n.Narrate(context.Background(), ""); err == nil {
		t.Error("Narrate with empty story succeeded")
	}
	n = &Narrator{AudioDir: t.TempDir()}
	if _, _, err := n.Narrate(context.Background(), "a story"); err == nil {
		t.Error("Narrate without synthesizer succeeded")
	}
}

type stubPortraits struct {
	prompt string
}

func (g *stubPortraits) Generate(_ context.Context, prompt string) (game.ImageRef, error) {
	g.prompt = prompt
	return game.ImageRef{Path: "images/portrait.png"}, nil
}

func TestOracle_Portrait(t *testing.T) {
	gen := &stubPortraits{}
	o := &Oracle{Portraits: gen}

	ref, err := o.Portrait(context.Background(), "Denisa")
	if err != nil {
		t.Fatalf("Portrait: %v", err)
	}
	if ref.Path != "images/portrait.png" {
		t.Errorf("path = %q", ref.Path)
	}
	if !strings.Contains(gen.prompt, "Denisa") {
		t.Errorf("portrait prompt %q does not mention the name", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "past life") {
		t.Errorf("portrait prompt %q off topic", gen.prompt)
	}
}

func TestOracle_PortraitPreconditions(t *testing.T) {
	o := &Oracle{Portraits: &stubPortraits{}}
	if _, err := o.Portrait(context.Background(), "  "); err == nil {
		t.Error("Portrait with blank name succeeded")
	}
	o = &Oracle{}
	if _, err := o.Portrait(context.Background(), "Denisa"); err == nil {
		t.Error("Portrait without generator succeeded")
	}
}

func TestOracle_TellRequiresClient(t *testing.T) {
	o := &Oracle{}
	if _, err := o.Tell(context.Background(), "Denisa"); err == nil {
		t.Error("Tell without client succeeded")
	}
	if _, err := o.Tell(context.Background(), ""); err == nil {
		t.Error("Tell with empty name succeeded")
	}
}

func TestStoryPrompt(t *testing.T) {
	p := storyPrompt("Denisa")
	if !strings.Contains(p, "Denisa") || !strings.Contains(p, "past life") {
		t.Errorf("story prompt = %q", p)
	}
}

func TestExecPlayer_Unavailable(t *testing.T) {
	p := &ExecPlayer{Candidates: []string{"definitely-not-a-real-player-binary"}}
	if p.Available() {
		t.Fatal("Available() = true for a nonexistent player")
	}

	f, err := os.CreateTemp(t.TempDir(), "*.mp3")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	f.Close()

	err = p.Play(context.Background(), f.Name())
	if !errors.Is(err, ErrPlaybackUnavailable) {
		t.Errorf("Play = %v, want ErrPlaybackUnavailable", err)
	}
}

func TestExecPlayer_MissingFile(t *testing.T) {
	p := &ExecPlayer{Candidates: []string{"true"}}
	if err := p.Play(context.Background(), t.TempDir()+"/nope.mp3"); err == nil {
		t.Error("Play on missing file succeeded")
	}
}
