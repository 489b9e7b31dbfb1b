package chat

import (
	"strings"
	"testing"

	"github.com/recoverycompanion/internal/content"
	"github.com/recoverycompanion/internal/typing"
)

func fixedChooser(idx int) content.Chooser {
	return func(int) int { return idx }
}

func hasLink(reply Reply, link Link) bool {
	for _, l := range reply.Links {
		if l == link {
			return true
		}
	}
	return false
}

func TestReplyIntentCascade(t *testing.T) {
	engine := NewEngine(fixedChooser(0))

	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{name: "negated harm", message: "I decided not to die", want: IntentChoosingLife},
		{name: "negated kill myself", message: "I will NOT kill myself", want: IntentChoosingLife},
		{name: "crisis suicide", message: "I keep thinking about suicide", want: IntentCrisis},
		{name: "crisis end my life", message: "I want to end my life", want: IntentCrisis},
		{name: "negation in other clause", message: "I'm not sure, I want to die", want: IntentCrisis},
		{name: "crisis beats substance", message: "I want to drink until I die", want: IntentCrisis},
		{name: "craving", message: "I really want to smoke", want: IntentRelapseRisk},
		{name: "avoidance", message: "I will not drink today", want: IntentAvoidance},
		{name: "avoidance with to", message: "I chose never to smoke again", want: IntentAvoidance},
		{name: "avoidance contraction", message: "I won't do drugs, no drugs for me", want: IntentAvoidance},
		{name: "substance beats exercise", message: "workout instead of alcohol", want: IntentRelapseRisk},
		{name: "exercise", message: "give me a quick workout", want: IntentExercise},
		{name: "games", message: "can we play a game", want: IntentGames},
		{name: "music", message: "I need some music", want: IntentMusic},
		{name: "movies", message: "let's watch a movie", want: IntentMovies},
		{name: "relax", message: "help me relax", want: IntentRelax},
		{name: "negative", message: "I feel so lonely today", want: IntentNegativeMood},
		{name: "positive", message: "I feel good now", want: IntentPositiveMood},
		{name: "motivation", message: "inspire me with a quote", want: IntentMotivation},
		{name: "greeting", message: "  Hello there  ", want: IntentGreeting},
		{name: "substring match", message: "he played gamely", want: IntentGames},
		{name: "fallback", message: "qwerty", want: IntentFallback},
		{name: "empty", message: "", want: IntentFallback},
		{name: "whitespace", message: "   \n\t ", want: IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Reply(Message{Text: tt.message, Username: "asha", Language: "english"})
			if got.Intent != tt.want {
				t.Fatalf("Reply(%q) intent = %s, want %s (text %q)", tt.message, got.Intent, tt.want, got.Text)
			}
			if strings.TrimSpace(got.Text) == "" {
				t.Fatalf("Reply(%q) returned empty text", tt.message)
			}
		})
	}
}

func TestNegatedHarmNeverCrisis(t *testing.T) {
	engine := NewEngine(nil)
	messages := []string{
		"I decided not to die",
		"I am not going to kill myself",
		"suicide is not for me, not suicide",
		"I will not die today",
	}

	for _, msg := range messages {
		if got := engine.Reply(Message{Text: msg}); got.Intent == IntentCrisis {
			t.Fatalf("Reply(%q) must not be crisis", msg)
		}
	}
}

func TestCrisisReplyIncludesHelpline(t *testing.T) {
	engine := NewEngine(nil)
	messages := []string{
		"suicide",
		"I have been reading about SUICIDE",
		"thinking of suicide again",
	}

	for _, msg := range messages {
		got := engine.Reply(Message{Text: msg, Username: "ravi"})
		if got.Intent != IntentCrisis {
			t.Fatalf("Reply(%q) intent = %s, want crisis", msg, got.Intent)
		}
		if !strings.Contains(got.Text, "9152987821") {
			t.Fatalf("crisis reply must include helpline: %q", got.Text)
		}
		if !strings.Contains(got.Text, "Ravi") {
			t.Fatalf("crisis reply should address the user: %q", got.Text)
		}
		if len(got.Links) != 0 {
			t.Fatalf("crisis reply must not suggest content, got %+v", got.Links)
		}
	}
}

func TestAvoidanceVersusCraving(t *testing.T) {
	engine := NewEngine(nil)

	avoid := engine.Reply(Message{Text: "I will not drink today"})
	if avoid.Intent != IntentAvoidance || !hasLink(avoid, LinkSpotifyHappy) {
		t.Fatalf("unexpected avoidance reply: %+v", avoid)
	}

	crave := engine.Reply(Message{Text: "I want a cigarette so badly"})
	if crave.Intent != IntentRelapseRisk {
		t.Fatalf("expected relapse-risk, got %s", crave.Intent)
	}
	for _, link := range []Link{LinkBreathing, LinkExercise, LinkMindfulVideo} {
		if !hasLink(crave, link) {
			t.Fatalf("craving reply missing %s", link.Title)
		}
	}
	if !strings.Contains(crave.Text, "breathing") {
		t.Fatalf("craving reply should offer a breathing exercise: %q", crave.Text)
	}
}

func TestNegativeMoodTemplates(t *testing.T) {
	seen := map[string]bool{}
	for i := range empathyTemplates {
		got := NewEngine(fixedChooser(i)).Reply(Message{Text: "I feel so lonely today", Username: "asha", Language: "english"})
		if got.Intent != IntentNegativeMood {
			t.Fatalf("expected negative-mood, got %s", got.Intent)
		}
		if len(got.Links) != 1 || got.Links[0] != empathyTemplates[i].link {
			t.Fatalf("template %d should reference its link, got %+v", i, got.Links)
		}
		seen[got.Text] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct templates, got %d", len(seen))
	}
}

func TestGamesReplyListsRelaxingGame(t *testing.T) {
	got := NewEngine(nil).Reply(Message{Text: "can we play a game", Username: "asha", Language: "english"})
	if got.Intent != IntentGames {
		t.Fatalf("expected games, got %s", got.Intent)
	}
	if !hasLink(got, LinkGameRelax) {
		t.Fatalf("games reply must list the relaxing game: %+v", got.Links)
	}
	if !strings.Contains(got.Text, LinkGameRelax.URL) {
		t.Fatalf("games text should embed the link: %q", got.Text)
	}
}

func TestTamilAppendsCatalogPick(t *testing.T) {
	got := NewEngine(nil).Reply(Message{Text: "can we play a game", Language: "tamil"})
	tamil := content.ByCategory("tamil", content.CategoryGames)[0]

	if !hasLink(got, LinkGameRelax) {
		t.Fatalf("tamil reply should keep the base links")
	}
	last := got.Links[len(got.Links)-1]
	if last.URL != tamil.URL {
		t.Fatalf("expected tamil pick %s, got %s", tamil.URL, last.URL)
	}

	english := NewEngine(nil).Reply(Message{Text: "can we play a game", Language: "english"})
	if len(english.Links) != 3 {
		t.Fatalf("english games reply should have 3 links, got %d", len(english.Links))
	}
}

func TestMotivationQuoteChoice(t *testing.T) {
	got := NewEngine(fixedChooser(2)).Reply(Message{Text: "give me advice"})
	if got.Text != Quotes[2] {
		t.Fatalf("expected quote 2, got %q", got.Text)
	}

	// out-of-range choices fall back to the first template
	got = NewEngine(fixedChooser(7)).Reply(Message{Text: "give me advice"})
	if got.Text != Quotes[0] {
		t.Fatalf("expected quote 0, got %q", got.Text)
	}
}

func TestFallbackUsesTypingMood(t *testing.T) {
	engine := NewEngine(nil)

	plain := engine.Reply(Message{Text: "qwerty"})
	if len(plain.Links) != 0 || !strings.Contains(plain.Text, "**music**") {
		t.Fatalf("unexpected plain fallback: %+v", plain)
	}

	stressed := engine.Reply(Message{Text: "qwerty", Mood: typing.MoodStressed})
	if !hasLink(stressed, LinkMindfulVideo) {
		t.Fatalf("stressed fallback should suggest meditation: %+v", stressed)
	}

	bored := engine.Reply(Message{Text: "qwerty", Mood: typing.MoodBored})
	if !hasLink(bored, LinkGameRelax) {
		t.Fatalf("bored fallback should suggest a game: %+v", bored)
	}

	// mood never changes the classification
	greeting := engine.Reply(Message{Text: "hello", Mood: typing.MoodStressed})
	if greeting.Intent != IntentGreeting || len(greeting.Links) != 0 {
		t.Fatalf("mood must not affect matched rules: %+v", greeting)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "asha", want: "Asha"},
		{input: "  RAVI ", want: "Ravi"},
		{input: "", want: "Friend"},
		{input: "élodie", want: "Élodie"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsNegated(t *testing.T) {
	if !isNegated("i don't smoke", substanceWords) {
		t.Fatal("expected negation for don't smoke")
	}
	if !isNegated("trying not to drink", substanceWords) {
		t.Fatal("expected negation for not to drink")
	}
	if isNegated("no, i want to drink", substanceWords) {
		t.Fatal("negation must be adjacent to the keyword")
	}
}
