// Package game implements the image telephone game: a text prompt is turned
// into an image, the image is described back into text, and the description
// becomes the next prompt. Repeating the cycle produces a chain of drifting
// artifacts.
//
// The package is built around two capability contracts, Generator and
// Analyzer, with provider implementations for OpenAI and Gemini. The Game
// orchestrator drives the loop strictly sequentially, records every completed
// cycle in a Session, and appends each cycle to a durable per-run log file.
//
// Example:
//
//	gen := &game.OpenAIGenerator{Client: &client, ArtifactsDir: "images"}
//	an := &game.OpenAIAnalyzer{Client: &client}
//	g, err := game.New(gen, an, game.WithLogDir("logs"))
//	if err != nil {
//	    return err
//	}
//	session, err := g.Play(ctx, "a cat wearing a wizard hat", 3)
package game
