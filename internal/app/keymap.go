package app

import "github.com/jwulff/postop/internal/api"

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyCtrlC     = "ctrl+c"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyH         = "h"
	KeyJ         = "j"
	KeyK         = "k"
	KeyL         = "l"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBackspace = "backspace"
	KeyRefresh   = "r"
	KeyEquipment = "e"
	KeyDone      = "d"
	KeyPatient   = "p"
	KeyNurse     = "n"
)

// voicePreset is a canned voice note submitted from the bed modal.
type voicePreset struct {
	Key     string
	Label   string
	Speaker api.Speaker
	Content string
}

var voicePresets = []voicePreset{
	{Key: "1", Label: "High Pain", Speaker: api.SpeakerPatient, Content: "My pain is really bad, like an 8 out of 10"},
	{Key: "2", Label: "Feeling Good", Speaker: api.SpeakerPatient, Content: "I feel great! Ready to go home"},
	{Key: "3", Label: "Nurse: Stable", Speaker: api.SpeakerNurse, Content: "Patient stable, ready for discharge"},
	{Key: "4", Label: "Nurse: Equipment", Speaker: api.SpeakerNurse, Content: "Patient needs IV pump and wheelchair"},
}

func presetForKey(key string) (voicePreset, bool) {
	for _, p := range voicePresets {
		if p.Key == key {
			return p, true
		}
	}
	return voicePreset{}, false
}
