package content

import (
	"errors"
	"strings"
)

// ErrUnknownTopic 在 awareness 主题不存在时返回
var ErrUnknownTopic = errors.New("unknown awareness topic")

// ErrInvalidSpend 当花费或频率不合法时返回
var ErrInvalidSpend = errors.New("invalid spend estimate")

// AwarenessTopic 描述一种成瘾类别的健康风险、建议与花费提示
type AwarenessTopic struct {
	Name      string   `json:"name"`
	Emoji     string   `json:"emoji"`
	Health    []string `json:"health"`
	Tips      []string `json:"tips"`
	Facts     []string `json:"facts"`
	CostHint  int      `json:"cost_hint"`
	HintDaily bool     `json:"hint_daily"`
}

const (
	SpendDaily  = "daily"
	SpendWeekly = "weekly"

	minSpend = 10
	maxSpend = 10000
)

// AwarenessQuotes 展示在主题详情顶部
var AwarenessQuotes = []string{
	"Small changes make a big difference 🌱",
	"You deserve peace and health 💚",
	"Each day without it makes you stronger 💪",
	"Recovery is not a race. It’s your journey 🌿",
	"You’re not alone in this 🌻",
}

var awarenessTopics = []AwarenessTopic{
	{
		Name:  "Alcohol",
		Emoji: "🍺",
		Health: []string{
			"Liver damage, anxiety, depression.",
			"Sleep disruption and dehydration.",
			"Memory loss and low concentration.",
		},
		Tips: []string{
			"Replace drinks with flavored water/juice.",
			"Avoid triggers (parties, late nights) early on.",
			"Seek therapy or community support.",
		},
		Facts: []string{
			"1 month alcohol-free → better sleep + ~20% higher energy.",
			"Even ‘social drinking’ impacts memory and skin health.",
		},
		CostHint:  250,
		HintDaily: true,
	},
	{
		Name:  "Cigarettes",
		Emoji: "🚬",
		Health: []string{
			"Lung disease, mouth cancer, heart issues.",
			"Premature aging and bad breath.",
			"Reduced stamina and oxygen levels.",
		},
		Tips: []string{
			"Use nicotine-free mints/sunflower seeds.",
			"Drink water during craving windows.",
			"Make a ‘no-smoking zone’ at home.",
		},
		Facts: []string{
			"Lungs start healing within 20 minutes of quitting.",
			"Quitting a pack/day can save ~₹6,000 per month.",
		},
		CostHint:  200,
		HintDaily: true,
	},
	{
		Name:  "Drugs",
		Emoji: "💉",
		Health: []string{
			"Brain chemistry damage and depression.",
			"Paranoia, panic attacks, loss of control.",
			"Organ failure and cognitive decline.",
		},
		Tips: []string{
			"Seek medical detox under supervision.",
			"Surround yourself with positive people.",
			"Exercise as a healthy dopamine source.",
		},
		Facts: []string{
			"After ~90 days sober, brain reward pathways start repairing.",
			"Support groups can reduce relapse risk significantly.",
		},
		CostHint:  1000,
		HintDaily: true,
	},
	{
		Name:  "Mobile Overuse",
		Emoji: "📱",
		Health: []string{
			"Eye strain, neck pain, reduced focus.",
			"Anxiety and poor sleep cycles.",
			"Social disconnection and FOMO.",
		},
		Tips: []string{
			"Use Digital Wellbeing app limits.",
			"No phone 1 hour before bed.",
			"Do one screen-free activity daily.",
		},
		Facts: []string{
			"Excess screen time reduces REM sleep quality.",
			"A 24-hour phone break improves mood and focus.",
		},
		// 按月的数据/时间成本估算
		CostHint: 1000,
	},
}

// AwarenessTopics 返回全部主题（按固定顺序）
func AwarenessTopics() []AwarenessTopic {
	return append([]AwarenessTopic(nil), awarenessTopics...)
}

// AwarenessTopicByName 按名称查找主题，忽略大小写与空格/连字符差异
func AwarenessTopicByName(name string) (AwarenessTopic, error) {
	key := topicKey(name)
	for _, topic := range awarenessTopics {
		if topicKey(topic.Name) == key {
			return topic, nil
		}
	}
	return AwarenessTopic{}, ErrUnknownTopic
}

func topicKey(name string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// YearlyCost 估算一年的花费：daily 按 365 天，weekly 按 52 周
func YearlyCost(amount int, frequency string) (int, error) {
	if amount < minSpend || amount > maxSpend {
		return 0, ErrInvalidSpend
	}

	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case SpendDaily, "":
		return amount * 365, nil
	case SpendWeekly:
		return amount * 52, nil
	default:
		return 0, ErrInvalidSpend
	}
}
