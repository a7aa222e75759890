package game

import (
	"strings"
	"testing"
	"time"
)

func TestLog_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

	l, err := OpenLog(dir, "0f8fad5b-d9cb-469f-a165-70867728950e", start)
	if err != nil {
		t.Fatalf("OpenLog: %v", err)
	}
	defer l.Close()

	if !strings.Contains(l.Path(), "game_log_") {
		t.Errorf("log path %q missing prefix", l.Path())
	}
	if !strings.Contains(l.Path(), "0f8fad5b") {
		t.Errorf("log path %q missing run id fragment", l.Path())
	}

	if err := l.AppendHeader("a cat wearing a wizard hat", start); err != nil {
		t.Fatalf("AppendHeader: %v", err)
	}
	rec := CycleRecord{
		Cycle:       1,
		Prompt:      "a cat wearing a wizard hat",
		ImagePath:   "telephone_game/image_1.png",
		Description: "a feline in pointed headwear",
	}
	if err := l.AppendCycle(rec, 3); err != nil {
		t.Fatalf("AppendCycle: %v", err)
	}
	end := start.Add(42 * time.Second)
	if err := l.AppendFooter(end); err != nil {
		t.Fatalf("AppendFooter: %v", err)
	}

	content, err := ReadLog(l.Path())
	if err != nil {
		t.Fatalf("ReadLog: %v", err)
	}

	want := "=== AI Telephone Game with Images ===\n" +
		"Start Time: 2025-03-14 15:09:26\n" +
		"Initial Prompt: a cat wearing a wizard hat\n" +
		"\n" +
		"--- Cycle 1 of 3 ---\n" +
		"Prompt: a cat wearing a wizard hat\n" +
		"Image Path: telephone_game/image_1.png\n" +
		"Description: a feline in pointed headwear\n" +
		"\n" +
		"\n" +
		"Game completed at: 2025-03-14 15:10:08\n"
	if content != want {
		t.Errorf("log content mismatch:\ngot:\n%s\nwant:\n%s", content, want)
	}
}

func TestOpenLog_Collision(t *testing.T) {
	dir := t.TempDir()
	start := time.Now()

	l, err := OpenLog(dir, "same-run-id", start)
	if err != nil {
		t.Fatalf("OpenLog: %v", err)
	}
	defer l.Close()

	// Same run id in the same second maps to the same filename; the second
	// open must fail instead of overwriting.
	if _, err := OpenLog(dir, "same-run-id", start); err == nil {
		t.Error("second OpenLog with identical name succeeded")
	}
}

func TestOpenLog_DistinctRuns(t *testing.T) {
	dir := t.TempDir()
	start := time.Now()

	l1, err := OpenLog(dir, "run-a-11112222", start)
	if err != nil {
		t.Fatalf("OpenLog a: %v", err)
	}
	defer l1.Close()
	l2, err := OpenLog(dir, "run-b-33334444", start)
	if err != nil {
		t.Fatalf("OpenLog b: %v", err)
	}
	defer l2.Close()

	if l1.Path() == l2.Path() {
		t.Errorf("distinct runs share log path %q", l1.Path())
	}
}

func TestReadLog_Missing(t *testing.T) {
	if _, err := ReadLog(t.TempDir() + "/nope.txt"); err == nil {
		t.Error("ReadLog on missing file succeeded")
	}
}
