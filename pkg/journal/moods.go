package journal

import (
	"sort"
	"strings"
)

// MoodGroups is the built-in mood catalog, keyed by emotional group.
var MoodGroups = map[string][]string{
	"Positive": {"Happy", "Excited", "Relaxed", "Grateful", "Confident"},
	"Neutral":  {"Calm", "Thoughtful", "Curious", "Nostalgic", "Bored"},
	"Negative": {"Sad", "Angry", "Stressed", "Lonely", "Anxious"},
}

// AllMoods returns every catalog mood, alphabetically sorted.
func AllMoods() []string {
	moods := []string{}
	for _, group := range MoodGroups {
		moods = append(moods, group...)
	}
	sort.Strings(moods)
	return moods
}

// MoodGroup returns the emotional group a mood belongs to, matching
// case-insensitively. Unknown moods are "Neutral".
func MoodGroup(mood string) string {
	for group, moods := range MoodGroups {
		for _, m := range moods {
			if strings.EqualFold(m, mood) {
				return group
			}
		}
	}
	return "Neutral"
}
