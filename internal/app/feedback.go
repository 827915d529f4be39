package app

import (
	"fmt"
	"math"

	"github.com/hax2/altlang/internal/game"
)

// canonicalAnswerThreshold: below this confidence a correct answer
// still shows the canonical translation alongside the confirmation.
const canonicalAnswerThreshold = 0.99

// feedbackForEvaluation maps a grading result to the message shown to
// the player.
func feedbackForEvaluation(ev game.Evaluation) string {
	if !ev.IsCorrect {
		return "Incorrecto"
	}
	switch ev.Type {
	case game.MatchExact:
		return "Respuesta perfecta"
	case game.MatchPartial:
		return "Respuesta parcial aceptada"
	case game.MatchFuzzy:
		return fmt.Sprintf("Respuesta aceptada (similitud: %d%%)", similarityPercent(ev.Confidence))
	default:
		return "¡Correcto!"
	}
}

// showCanonicalAnswer reports whether the expected translation should
// accompany a correct answer.
func showCanonicalAnswer(ev game.Evaluation) bool {
	return ev.IsCorrect && ev.Confidence < canonicalAnswerThreshold
}

func similarityPercent(confidence float64) int {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return int(math.Round(confidence * 100))
}
