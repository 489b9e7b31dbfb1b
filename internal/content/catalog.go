// Package content holds the static, language-keyed tables used by the chat
// replies and the entertainment, awareness and tracker pages.
package content

import (
	"fmt"
	"strings"

	"github.com/recoverycompanion/internal/locale"
)

const (
	CategoryMusic  = "music"
	CategoryMovies = "movies"
	CategoryGames  = "games"
	CategoryRelax  = "relax"
)

// Item is one titled resource link.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Chooser returns an index in [0, n).
type Chooser func(n int) int

var entertainment = map[string]map[string][]Item{
	locale.LanguageEnglish: {
		CategoryMusic: {
			{Title: "Relaxing Rain Sounds 🌧️", URL: "https://open.spotify.com/playlist/37i9dQZF1DX4sWSpwq3LiO"},
			{Title: "Calm Acoustic Vibes 🎸", URL: "https://open.spotify.com/playlist/37i9dQZF1DX2UgsUIg75Vg"},
			{Title: "Positive Energy 🎵", URL: "https://open.spotify.com/playlist/37i9dQZF1DX3rxVfibe1L0"},
		},
		CategoryMovies: {
			{Title: "The Pursuit of Happyness 🎬", URL: "https://www.youtube.com/results?search_query=the+pursuit+of+happyness+full+movie"},
			{Title: "Inside Out (Animated) 💜", URL: "https://www.youtube.com/results?search_query=inside+out+full+movie"},
			{Title: "Paddington 🧸", URL: "https://www.youtube.com/results?search_query=paddington+movie+english+full"},
		},
		CategoryGames: {
			{Title: "Calm Relaxing Game 🎮", URL: "https://poki.com/en/g/relaxing-games"},
			{Title: "Stress Buster Ball 🏐", URL: "https://poki.com/en/g/ball-blast"},
			{Title: "Zen Garden 🌱", URL: "https://poki.com/en/g/zen"},
		},
		CategoryRelax: {
			{Title: "Guided Meditation 🧘", URL: "https://www.youtube.com/results?search_query=guided+meditation+10+minutes"},
			{Title: "Ocean Sounds 🌊", URL: "https://www.youtube.com/results?search_query=ocean+wave+sounds+for+sleep"},
			{Title: "Soft Piano Nights 🎹", URL: "https://open.spotify.com/playlist/37i9dQZF1DWVqfgj8NZEp1"},
		},
	},
	locale.LanguageTamil: {
		CategoryMusic: {
			{Title: "Peaceful Tamil Melodies 🎶", URL: "https://www.youtube.com/results?search_query=peaceful+tamil+melodies"},
			{Title: "Tamil Love Instrumentals 💞", URL: "https://www.youtube.com/results?search_query=tamil+instrumental+music+bgm"},
			{Title: "Soothing Ilayaraja Classics 🎧", URL: "https://www.youtube.com/results?search_query=ilayaraja+melody+songs"},
		},
		CategoryMovies: {
			{Title: "Velaiilla Pattadhari (VIP) 🎥", URL: "https://www.youtube.com/results?search_query=vip+tamil+full+movie"},
			{Title: "Nanban 💚", URL: "https://www.youtube.com/results?search_query=nanban+full+movie"},
			{Title: "Oh My Kadavule 💖", URL: "https://www.youtube.com/results?search_query=oh+my+kadavule+full+movie"},
		},
		CategoryGames: {
			{Title: "Stress Buster Game 🎯", URL: "https://poki.com/en/g/stress-relief-games"},
			{Title: "Brain Calm Puzzle 🧩", URL: "https://poki.com/en/g/mind-games"},
			{Title: "Relax Bubble Pop 🫧", URL: "https://poki.com/en/g/bubble-games"},
		},
		CategoryRelax: {
			{Title: "Calm Nature Tamil 🕊️", URL: "https://www.youtube.com/results?search_query=tamil+relaxation+music"},
			{Title: "Meditation Tamil 🧘‍♀️", URL: "https://www.youtube.com/results?search_query=tamil+guided+meditation"},
			{Title: "Rain Ambience Tamil 🌧️", URL: "https://www.youtube.com/results?search_query=tamil+rain+sounds"},
		},
	},
}

// pickOrder 是多项推荐时各分类的展示顺序。
var pickOrder = []string{CategoryMusic, CategoryMovies, CategoryRelax, CategoryGames}

// Categories returns the entertainment categories in display order.
func Categories() []string {
	return append([]string(nil), pickOrder...)
}

func tableFor(language string) map[string][]Item {
	if table, ok := entertainment[locale.NormalizeLanguage(language)]; ok {
		return table
	}
	return entertainment[locale.LanguageEnglish]
}

// ByCategory returns the resources of one category. Unknown languages fall
// back to English, unknown categories yield an empty slice.
func ByCategory(language, category string) []Item {
	items := tableFor(language)[strings.ToLower(strings.TrimSpace(category))]
	return append([]Item{}, items...)
}

// Picks returns up to perCategory items of every category.
func Picks(language string, perCategory int) []Item {
	var result []Item
	for _, category := range pickOrder {
		items := ByCategory(language, category)
		if perCategory > 0 && len(items) > perCategory {
			items = items[:perCategory]
		}
		result = append(result, items...)
	}
	return result
}

// Moods offered by the entertainment page.
var Moods = []string{"stressed", "bored", "happy", "lonely", "anxious", "tired"}

// Suggestion is a mood-driven single recommendation.
type Suggestion struct {
	Mood     string `json:"mood"`
	Category string `json:"category"`
	Item     Item   `json:"item"`
	Message  string `json:"message"`
}

// Suggest picks one resource that suits the given mood.
func Suggest(language, mood, name string, choose Chooser) Suggestion {
	mood = strings.ToLower(strings.TrimSpace(mood))

	var category, message string
	switch mood {
	case "stressed", "anxious":
		category = CategoryRelax
		message = "%s, take a short break 🌿 Try this to calm your mind: [%s](%s)"
	case "bored", "tired":
		category = CategoryGames
		message = "%s, looks like you need some fun 🎮 Try this: [%s](%s)"
	case "happy", "better":
		category = CategoryMusic
		message = "Awesome, %s! Keep that good energy with [%s](%s)"
	default:
		category = CategoryMovies
		message = "%s, here’s something inspiring to watch 🎥 [%s](%s)"
	}

	items := ByCategory(language, category)
	item := items[pick(choose, len(items))]

	return Suggestion{
		Mood:     mood,
		Category: category,
		Item:     item,
		Message:  fmt.Sprintf(message, name, item.Title, item.URL),
	}
}

func pick(choose Chooser, n int) int {
	if choose == nil || n <= 1 {
		return 0
	}
	idx := choose(n)
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}
