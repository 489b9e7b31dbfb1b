package chat

import (
	"regexp"
	"strings"
)

// Keyword sets are matched as plain substrings of the lower-cased message,
// so "game" also matches inside "gamely".
var (
	harmWords       = []string{"die", "suicide", "end my life", "kill myself"}
	substanceWords  = []string{"drink", "alcohol", "smoke", "cigarette", "weed", "drugs"}
	exerciseWords   = []string{"exercise", "workout", "stretch", "yoga", "move body"}
	gameWords       = []string{"game", "games", "play", "bored game"}
	musicWords      = []string{"music", "song", "playlist", "tune", "melody"}
	movieWords      = []string{"movie", "film", "watch", "video", "show"}
	relaxWords      = []string{"relax", "relaxation", "meditate", "calm", "peaceful", "mindfulness", "breathe"}
	negativeWords   = []string{"sad", "upset", "low", "not good", "angry", "tired", "lonely"}
	positiveWords   = []string{"good", "happy", "better", "fine", "awesome", "ok now", "okay now"}
	motivationWords = []string{"motivate", "quote", "advice", "inspire"}
	greetingWords   = []string{"hi", "hello", "hey", "morning", "evening"}

	negationWords = []string{"not", "no", "dont", "don't", "never", "without", "won't", "cannot", "can't"}
)

// negatedHarm matches "not" followed by a harm term inside the same clause.
var negatedHarm = regexp.MustCompile(`\bnot\b[^.!?;,\n]*\b(die|suicide|kill myself)\b`)

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

// isNegated reports whether any keyword is directly preceded by a negation
// word, either as "{neg} {kw}" or "{neg} to {kw}".
func isNegated(msg string, keywords []string) bool {
	for _, neg := range negationWords {
		for _, kw := range keywords {
			if strings.Contains(msg, neg+" "+kw) || strings.Contains(msg, neg+" to "+kw) {
				return true
			}
		}
	}
	return false
}

func isNegatedHarm(msg string) bool {
	return negatedHarm.MatchString(msg)
}
