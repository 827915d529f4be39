package speech

import (
	"context"
	"testing"
)

func TestESpeakArgsSpanishDefaults(t *testing.T) {
	e := NewESpeak(1.0, 1.0)
	args := e.args("buenos días", "es")
	want := []string{"-v", "es", "-a", "200", "-s", "175", "buenos días"}
	if len(args) != len(want) {
		t.Fatalf("unexpected args %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q (%v)", i, args[i], want[i], args)
		}
	}
}

func TestESpeakArgsEnglishVoiceAndScaling(t *testing.T) {
	e := NewESpeak(0.5, 1.2)
	args := e.args("good morning", "en")
	if args[1] != "en-us" {
		t.Fatalf("expected en-us voice, got %q", args[1])
	}
	if args[3] != "100" {
		t.Fatalf("expected amplitude 100 at half volume, got %q", args[3])
	}
	if args[5] != "210" {
		t.Fatalf("expected 210 wpm at 1.2x rate, got %q", args[5])
	}
}

func TestESpeakArgsClampExtremes(t *testing.T) {
	e := NewESpeak(4.0, 10.0)
	args := e.args("hola", "es")
	if args[3] != "200" {
		t.Fatalf("volume must clamp to 200, got %q", args[3])
	}
	if args[5] != "525" {
		t.Fatalf("rate must clamp to 3x, got %q", args[5])
	}
}

func TestNullSpeakerIsSilentAndAvailable(t *testing.T) {
	var s Speaker = Null{}
	if !s.Available() {
		t.Fatalf("null speaker must always be available")
	}
	if err := s.Speak(context.Background(), "hola", "es"); err != nil {
		t.Fatalf("null speak: %v", err)
	}
}

func TestESpeakSkipsEmptyText(t *testing.T) {
	e := NewESpeak(1, 1)
	if err := e.Speak(context.Background(), "   ", "es"); err != nil {
		t.Fatalf("empty text must be a no-op, got %v", err)
	}
}
