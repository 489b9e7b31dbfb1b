package content

// DailyTask is one item of the tracker's daily checklist.
type DailyTask struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Examples []string `json:"examples"`
}

var dailyTasks = []DailyTask{
	{Key: "meditation", Label: "🧘 Meditation", Examples: []string{
		"10-minute guided breathing (Headspace/YouTube)",
		"Box breathing 4-4-6 (inhale-hold-exhale)",
		"Mindful body scan for 5 minutes",
	}},
	{Key: "exercise", Label: "🚶 Exercise", Examples: []string{
		"30-minute brisk walk",
		"15-minute yoga/stretch flow",
		"Short home workout: 3× (10 squats, 10 pushups, 20s plank)",
	}},
	{Key: "meal", Label: "🥗 Healthy meal", Examples: []string{
		"Oats + fruits / sprouts salad",
		"Brown rice + dal + veggies",
		"Grilled paneer/chicken + salad",
	}},
	{Key: "hydration", Label: "💧 Hydration", Examples: []string{
		"Aim for ~2 litres (4× 500ml bottles)",
		"1 glass right after waking up",
		"Carry a bottle and sip every hour",
	}},
	{Key: "sleep", Label: "😴 Sleep on time", Examples: []string{
		"No phone 30 mins before bed",
		"Sleep target: before 11:00 PM",
		"Dark, cool room; slow breathing",
	}},
}

// RecoveryQuotes are stored on a day record when it is marked complete.
var RecoveryQuotes = []string{
	"Healing isn’t overnight. Small steps count 🌱",
	"You’re stronger than your cravings 💪",
	"Progress, not perfection 💚",
	"Each sober sunrise is a victory ☀️",
	"Be kind to yourself today 🌿",
	"Your effort matters more than you think 💫",
}

// DailyTasks returns the checklist shown on the tracker page.
func DailyTasks() []DailyTask {
	return append([]DailyTask(nil), dailyTasks...)
}
