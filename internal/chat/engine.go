// Package chat implements the rule-based recovery chatbot.
//
// A message is classified by an ordered cascade of keyword rules; the first
// rule that matches decides the reply. The engine holds no per-user state.
package chat

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/recoverycompanion/internal/content"
	"github.com/recoverycompanion/internal/locale"
	"github.com/recoverycompanion/internal/typing"
)

// Intent labels the rule that produced a reply.
type Intent string

const (
	IntentChoosingLife Intent = "choosing-life"
	IntentCrisis       Intent = "crisis"
	IntentRelapseRisk  Intent = "relapse-risk"
	IntentAvoidance    Intent = "avoidance"
	IntentExercise     Intent = "exercise"
	IntentGames        Intent = "games"
	IntentMusic        Intent = "music"
	IntentMovies       Intent = "movies"
	IntentRelax        Intent = "relax"
	IntentNegativeMood Intent = "negative-mood"
	IntentPositiveMood Intent = "positive-mood"
	IntentMotivation   Intent = "motivation"
	IntentGreeting     Intent = "greeting"
	IntentFallback     Intent = "fallback"
)

const defaultName = "Friend"

// Message is one incoming chat line.
type Message struct {
	Text     string
	Username string
	Language string
	// Mood is an optional hint from the typing pace analyzer.
	Mood typing.Mood
}

// Reply is the engine output. Text is markdown; Links lists the resources
// embedded in it, in order.
type Reply struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
	Links  []Link `json:"links"`
}

// Quotes returned for motivation requests.
var Quotes = []string{
	"🌿 *Healing is not about speed — it’s about direction.*",
	"💫 *Recovery doesn’t mean perfection, it means progress.*",
	"🌻 *You’ve survived 100% of your bad days — that’s strength.*",
}

// Engine produces replies. The chooser picks among same-intent templates.
type Engine struct {
	choose content.Chooser
}

// NewEngine builds an engine; a nil chooser always picks the first template.
func NewEngine(choose content.Chooser) *Engine {
	return &Engine{choose: choose}
}

type rule struct {
	intent   Intent
	keywords []string
	category string
	respond  func(e *Engine, name string) Reply
}

// rules after the crisis and substance checks, in priority order.
var rules = []rule{
	{intent: IntentExercise, keywords: exerciseWords, respond: (*Engine).exerciseReply},
	{intent: IntentGames, keywords: gameWords, category: content.CategoryGames, respond: (*Engine).gamesReply},
	{intent: IntentMusic, keywords: musicWords, category: content.CategoryMusic, respond: (*Engine).musicReply},
	{intent: IntentMovies, keywords: movieWords, category: content.CategoryMovies, respond: (*Engine).moviesReply},
	{intent: IntentRelax, keywords: relaxWords, category: content.CategoryRelax, respond: (*Engine).relaxReply},
	{intent: IntentNegativeMood, keywords: negativeWords, respond: (*Engine).negativeReply},
	{intent: IntentPositiveMood, keywords: positiveWords, respond: (*Engine).positiveReply},
	{intent: IntentMotivation, keywords: motivationWords, respond: (*Engine).motivationReply},
	{intent: IntentGreeting, keywords: greetingWords, respond: (*Engine).greetingReply},
}

// Reply classifies msg and builds the response. It never fails.
func (e *Engine) Reply(msg Message) Reply {
	text := normalize(msg.Text)
	name := DisplayName(msg.Username)

	if isNegatedHarm(text) {
		return build(IntentChoosingLife,
			"💚 That’s wonderful, %s. Choosing life shows courage 🌱 You’re growing stronger every day.", name)
	}

	if containsAny(text, harmWords) {
		return e.crisisReply(name)
	}

	if containsAny(text, substanceWords) {
		if isNegated(text, substanceWords) {
			return build(IntentAvoidance,
				"💚 Great job, %s! Avoiding cravings takes strength 🌿 Try %s for motivation.", name, LinkSpotifyHappy)
		}
		return e.relapseReply(name)
	}

	for _, r := range rules {
		if !containsAny(text, r.keywords) {
			continue
		}
		reply := r.respond(e, name)
		if r.category != "" {
			reply = withLocalPick(reply, msg.Language, r.category)
		}
		return reply
	}

	return e.fallbackReply(name, msg.Mood)
}

// DisplayName upper-cases the first letter of username and lower-cases the rest.
func DisplayName(username string) string {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return defaultName
	}
	first, size := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(first)) + strings.ToLower(trimmed[size:])
}

func (e *Engine) pick(n int) int {
	if e == nil || e.choose == nil || n <= 1 {
		return 0
	}
	idx := e.choose(n)
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

// build formats a template whose Link arguments are rendered as markdown and
// collected into Reply.Links.
func build(intent Intent, format string, args ...any) Reply {
	reply := Reply{Intent: intent}
	rendered := make([]any, len(args))
	for i, arg := range args {
		if link, ok := arg.(Link); ok {
			reply.Links = append(reply.Links, link)
			rendered[i] = link.Markdown()
			continue
		}
		rendered[i] = arg
	}
	reply.Text = fmt.Sprintf(format, rendered...)
	return reply
}

// withLocalPick appends the first catalog entry of a non-English language.
func withLocalPick(reply Reply, language, category string) Reply {
	if locale.Resolve(language, locale.LanguageEnglish) == locale.LanguageEnglish {
		return reply
	}
	items := content.ByCategory(language, category)
	if len(items) == 0 {
		return reply
	}
	link := Link{Title: items[0].Title, URL: items[0].URL}
	reply.Links = append(reply.Links, link)
	reply.Text += "\n➡️ " + link.Markdown()
	return reply
}

func (e *Engine) crisisReply(name string) Reply {
	return build(IntentCrisis, "⚠️ %s, I sense you’re in deep distress.\n"+
		"You are **not alone**. Please reach out for help:\n"+
		"📞 **Snehi Helpline (India): %s**\n"+
		"💬 Talk to someone you trust.\n"+
		"Your life matters, %s. Let’s take a slow breath together 💚", name, HelplineNumber, name)
}

func (e *Engine) relapseReply(name string) Reply {
	return build(IntentRelapseRisk, "It’s okay, %s. Relapse thoughts don’t mean failure — recovery is a journey 🌱\n"+
		"Let’s do something helpful together — try a grounding activity:\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"➡️ or %s\n"+
		"Would you like me to guide a short 2-minute breathing now?", name, LinkBreathing, LinkExercise, LinkMindfulVideo)
}

func (e *Engine) exerciseReply(name string) Reply {
	return build(IntentExercise, "Great idea, %s! Movement helps balance your mind 🌿\n"+
		"Try these quick workouts:\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"Would you like me to suggest one daily reminder for movement?", name, LinkExercise, LinkBreathing, LinkMindfulVideo)
}

func (e *Engine) gamesReply(name string) Reply {
	return build(IntentGames, "Here you go, %s! 🎮 Try one of these to relax:\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"Fun is therapy too — pick one and enjoy 🌿", name, LinkGameRelax, LinkGameFidget, LinkGameZen)
}

func (e *Engine) musicReply(name string) Reply {
	return build(IntentMusic, "🎵 Music heals, %s. Try these:\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"Would you like a playlist that matches your current mood?", name, LinkSpotifyCalm, LinkSpotifyHappy, LinkPeacefulPiano)
}

func (e *Engine) moviesReply(name string) Reply {
	return build(IntentMovies, "Here’s something uplifting, %s 🎬\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"Laughter and light stories are powerful healers 🌸", name, LinkMoviesFeel, LinkComedy)
}

func (e *Engine) relaxReply(name string) Reply {
	return build(IntentRelax, "🧘 Let’s relax together, %s. Try one of these calming choices:\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"➡️ %s\n"+
		"Would you like me to play calming background sounds too?", name, LinkMindfulVideo, LinkBreathing, LinkMindfulBreath)
}

// empathyTemplates each embed exactly one link.
var empathyTemplates = []struct {
	format string
	link   Link
}{
	{format: "I hear you, %s. It’s okay to feel that way 💚 Try a reset: breathe slowly and listen to %s.", link: LinkSpotifyCalm},
	{format: "You’re not alone, %s. Here’s a 2-min calm session: %s", link: LinkMindfulVideo},
	{format: "Bad days pass too, %s. Maybe watch %s to lift your mood 🌤️", link: LinkComedy},
}

func (e *Engine) negativeReply(name string) Reply {
	tpl := empathyTemplates[e.pick(len(empathyTemplates))]
	return build(IntentNegativeMood, tpl.format, name, tpl.link)
}

func (e *Engine) positiveReply(name string) Reply {
	return build(IntentPositiveMood,
		"That’s amazing, %s! 🌸 Keep that energy alive with %s or %s.", name, LinkSpotifyHappy, LinkMoviesFeel)
}

func (e *Engine) motivationReply(string) Reply {
	return Reply{Intent: IntentMotivation, Text: Quotes[e.pick(len(Quotes))]}
}

func (e *Engine) greetingReply(name string) Reply {
	return build(IntentGreeting, "👋 Hey %s! How are you feeling today?", name)
}

func (e *Engine) fallbackReply(name string, mood typing.Mood) Reply {
	reply := build(IntentFallback, "Thanks for sharing, %s. I’m here to help 🌿\n"+
		"You can ask me for **music**, **games**, **exercise**, or **relaxation** ideas anytime 💚", name)

	var extra Link
	switch mood {
	case typing.MoodStressed:
		extra = LinkMindfulVideo
		reply.Text += "\nYou seem a little tense — maybe try " + extra.Markdown()
	case typing.MoodBored:
		extra = LinkGameRelax
		reply.Text += "\nNeed a quick break? Try " + extra.Markdown()
	default:
		return reply
	}
	reply.Links = append(reply.Links, extra)
	return reply
}
