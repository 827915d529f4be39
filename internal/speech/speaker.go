// Package speech speaks card text aloud through a local TTS engine.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Speaker pronounces text in a given language ("es" or "en").
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
	Name() string
	Available() bool
}

// baseRateWPM is espeak-ng's default speaking rate in words per minute.
const baseRateWPM = 175

// ESpeak drives the espeak-ng binary. Volume is [0,1], rate is a
// multiplier where 1.0 is the engine default.
type ESpeak struct {
	binary string
	volume float64
	rate   float64
}

func NewESpeak(volume, rate float64) *ESpeak {
	return &ESpeak{binary: "espeak-ng", volume: volume, rate: rate}
}

func (e *ESpeak) Name() string { return "espeak-ng" }

func (e *ESpeak) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

func (e *ESpeak) SetVolume(v float64) { e.volume = v }
func (e *ESpeak) SetRate(r float64)   { e.rate = r }

func (e *ESpeak) Speak(ctx context.Context, text, lang string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, e.binary, e.args(text, lang)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (e *ESpeak) args(text, lang string) []string {
	voice := "es"
	if lang == "en" {
		voice = "en-us"
	}
	amplitude := int(clamp(e.volume, 0, 1) * 200)
	wpm := int(clamp(e.rate, 0.3, 3) * baseRateWPM)
	return []string{
		"-v", voice,
		"-a", strconv.Itoa(amplitude),
		"-s", strconv.Itoa(wpm),
		text,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Null is the fallback speaker used when no TTS engine is installed or
// speech is disabled. Speak is a no-op.
type Null struct{}

func (Null) Speak(context.Context, string, string) error { return nil }
func (Null) Name() string                                { return "null" }
func (Null) Available() bool                             { return true }

// Detect returns the first available engine, falling back to Null.
func Detect(volume, rate float64) Speaker {
	if e := NewESpeak(volume, rate); e.Available() {
		return e
	}
	return Null{}
}
