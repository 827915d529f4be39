package game

import "strconv"

// Setting keys shared between the study logic and the view layer.
const (
	SettingTTSAutoPlay        = "ttsAutoPlay"
	SettingTTSAutoPlayEnglish = "ttsAutoPlayEnglish"
	SettingTTSVolume          = "ttsVolume"
	SettingTTSRate            = "ttsRate"
	SettingAnimationsEnabled  = "animationsEnabled"
	SettingFlashcardFlipSpeed = "flashcardFlipSpeed"
	SettingShowProgressBars   = "showProgressBars"
	SettingShowXP             = "showXP"
)

func defaultSettings() map[string]string {
	return map[string]string{
		SettingTTSAutoPlay:        "true",
		SettingTTSAutoPlayEnglish: "false",
		SettingTTSVolume:          "1",
		SettingTTSRate:            "1",
		SettingAnimationsEnabled:  "true",
		SettingFlashcardFlipSpeed: "0.6",
		SettingShowProgressBars:   "true",
		SettingShowXP:             "true",
	}
}

// SettingBool interprets a stored setting value as a boolean.
func SettingBool(value string) bool {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return v
}

// SettingFloat interprets a stored setting value as a float, falling
// back to the given default on parse failure.
func SettingFloat(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return v
}
