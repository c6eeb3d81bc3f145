// Package notes derives equipment mentions and a coarse bed status from free
// note text.
package notes

import (
	"strings"

	"github.com/jwulff/postop/internal/api"
)

// EquipmentKeywords is the vocabulary recognised by ExtractEquipment.
var EquipmentKeywords = []string{
	"pain medication",
	"IV pump",
	"wheelchair",
	"blood pressure monitor",
	"oxygen",
	"catheter",
	"IV bag",
	"bandages",
	"anti-nausea medication",
	"discharge papers",
	"prescription",
	"walker",
	"crutches",
}

var dischargePhrases = []string{
	"ready for discharge", "discharge papers", "family here", "going home",
}

var attentionPhrases = []string{
	"severe pain", "urgently", "complications", "needs attention", "bleeding",
}

// ExtractEquipment returns the keywords mentioned in text, case-insensitively,
// in vocabulary order. The result is nil when nothing matches.
func ExtractEquipment(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range EquipmentKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// StatusFromNote maps note text to a bed status. Discharge phrases win over
// attention phrases; empty or unmatched text is stable.
func StatusFromNote(text string) api.Status {
	lower := strings.ToLower(text)
	switch {
	case lower == "":
		return api.StatusStable
	case containsAny(lower, dischargePhrases):
		return api.StatusReadyDischarge
	case containsAny(lower, attentionPhrases):
		return api.StatusNeedsAttention
	default:
		return api.StatusStable
	}
}

// Summarize counts, per equipment item, how many texts mention it.
func Summarize(texts []string) map[string]int {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, item := range ExtractEquipment(t) {
			counts[item]++
		}
	}
	return counts
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
