package chat

import "fmt"

// Link is a titled resource embedded in a reply.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Markdown renders the link as an inline markdown link.
func (l Link) Markdown() string {
	return fmt.Sprintf("[%s](%s)", l.Title, l.URL)
}

var (
	LinkSpotifyCalm   = Link{Title: "Relaxing Playlist 🎧", URL: "https://open.spotify.com/playlist/37i9dQZF1DWU0ScTcjJBdj"}
	LinkSpotifyHappy  = Link{Title: "Happy Vibes 🎵", URL: "https://open.spotify.com/playlist/37i9dQZF1DXdPec7aLTmlC"}
	LinkPeacefulPiano = Link{Title: "Peaceful Piano Nights 🎹", URL: "https://open.spotify.com/playlist/37i9dQZF1DWVqfgj8NZEp1"}
	LinkMoviesFeel    = Link{Title: "Feel-Good Movies 🎬", URL: "https://www.youtube.com/results?search_query=feel+good+movies+english+tamil+full+movie"}
	LinkComedy        = Link{Title: "Funny Clips 😄", URL: "https://www.youtube.com/results?search_query=tamil+comedy+scenes+or+english+funny+videos"}
	LinkGameRelax     = Link{Title: "Stress Relief Game 🎮", URL: "https://poki.com/en/g/relaxing-games"}
	LinkGameFidget    = Link{Title: "Fidget Spinner Game 🌀", URL: "https://poki.com/en/g/fidget-spinner"}
	LinkGameZen       = Link{Title: "Zen Garden 🌸", URL: "https://poki.com/en/g/zen"}
	LinkExercise      = Link{Title: "5-Minute Stress Relief Exercise 🏋️‍♀️", URL: "https://www.youtube.com/results?search_query=5+minute+home+exercise+for+stress+relief"}
	LinkMindfulVideo  = Link{Title: "Guided Meditation 🧘‍♀️", URL: "https://www.youtube.com/results?search_query=guided+meditation+for+anxiety+10+minutes"}
	LinkMindfulBreath = Link{Title: "10-Minute Mindful Breathing 🌿", URL: "https://www.youtube.com/watch?v=ZToicYcHIOU"}
	LinkBreathing     = Link{Title: "4-7-8 Breathing Technique 🌬️", URL: "https://www.youtube.com/watch?v=inpok4MKVLM"}
	LinkTherapy       = Link{Title: "Book a Therapy Session 💚", URL: "#therapist-booking"}
)

// HelplineNumber is the Snehi crisis line quoted in crisis replies.
const HelplineNumber = "9152987821"
