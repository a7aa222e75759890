package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the telephone directory layout under the user's
// home directory.
type Paths struct {
	// HomeDir is the user's home directory.
	HomeDir string
}

// NewPaths creates a new Paths instance.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns the base telephone directory (~/.telephone).
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns the config file path (~/.telephone/config.yaml).
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// ImagesDir returns the generated-image artifacts directory.
func (p *Paths) ImagesDir() string {
	return filepath.Join(p.BaseDir(), "images")
}

// LogDir returns the directory for per-run game logs and the app log.
func (p *Paths) LogDir() string {
	return filepath.Join(p.BaseDir(), "logs")
}

// AudioDir returns the directory for narration audio files.
func (p *Paths) AudioDir() string {
	return filepath.Join(p.BaseDir(), "audio")
}

// DataDir returns the run-history database directory.
func (p *Paths) DataDir() string {
	return filepath.Join(p.BaseDir(), "data")
}

// EnsureBaseDir creates the base directory if it doesn't exist.
func (p *Paths) EnsureBaseDir() error {
	return os.MkdirAll(p.BaseDir(), 0755)
}

// EnsureImagesDir creates the images directory if it doesn't exist.
func (p *Paths) EnsureImagesDir() error {
	return os.MkdirAll(p.ImagesDir(), 0755)
}

// EnsureLogDir creates the log directory if it doesn't exist.
func (p *Paths) EnsureLogDir() error {
	return os.MkdirAll(p.LogDir(), 0755)
}

// EnsureAudioDir creates the audio directory if it doesn't exist.
func (p *Paths) EnsureAudioDir() error {
	return os.MkdirAll(p.AudioDir(), 0755)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir(), 0755)
}

// LogPath returns a path within the log directory.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogDir(), name)
}
