package analytics

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ChartFollowers  = "followers"
	ChartReach      = "reach"
	ChartEngagement = "engagement"
	ChartPosts      = "posts"
)

type ChartData struct {
	Kind   string    `json:"kind"`
	Label  string    `json:"label"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Charts returns one dataset per dashboard chart, keyed by metric name.
func (s *Series) Charts() map[string]ChartData {
	labels := s.Labels()
	followers := make([]float64, len(s.Days))
	engagement := make([]float64, len(s.Days))
	posts := make([]float64, len(s.Days))
	for i, d := range s.Days {
		followers[i] = float64(d.Followers)
		engagement[i] = d.EngagementRatePercent
		posts[i] = float64(d.PostsCount)
	}

	return map[string]ChartData{
		ChartFollowers: {Kind: "line", Label: "Seguidores", Labels: labels, Values: followers},
		ChartReach: {
			Kind:   "bar",
			Label:  "Alcance",
			Labels: []string{"Reels", "Posts", "Stories"},
			Values: []float64{
				float64(s.ReachByFormat.Reels),
				float64(s.ReachByFormat.Posts),
				float64(s.ReachByFormat.Stories),
			},
		},
		ChartEngagement: {Kind: "line", Label: "Engagement rate (%)", Labels: labels, Values: engagement},
		ChartPosts:      {Kind: "bar", Label: "Publicaciones", Labels: labels, Values: posts},
	}
}

type SummaryText struct {
	FollowersTotal    string `json:"followersTotal"`
	FollowersDelta    string `json:"followersDelta"`
	ReachAverage      string `json:"reachAverage"`
	InteractionsTotal string `json:"interactionsTotal"`
	BestHour          string `json:"bestHour"`
}

// Text renders the summary the way the dashboard cards show it. Counts use
// the locale's digit grouping; the delta keeps a "." point in every locale.
func (s Summary) Text(tag language.Tag) SummaryText {
	p := message.NewPrinter(tag)
	count := func(n int64) string {
		if skipsSmallGrouping(tag) && n > -10000 && n < 10000 {
			return strconv.FormatInt(n, 10)
		}
		return p.Sprintf("%d", n)
	}
	sign := ""
	if s.FollowersDeltaPercent >= 0 {
		sign = "+"
	}
	return SummaryText{
		FollowersTotal:    count(int64(s.FollowersTotal)),
		FollowersDelta:    sign + toFixed(s.FollowersDeltaPercent, 1) + "% vs inicio",
		ReachAverage:      count(int64(roundHalfUp(s.ReachAverage))) + " / dia",
		InteractionsTotal: count(int64(s.InteractionsTotal)),
		BestHour:          s.BestHour,
	}
}

// skipsSmallGrouping reports whether the locale leaves four digit numbers
// ungrouped (CLDR minimumGroupingDigits of 2).
func skipsSmallGrouping(tag language.Tag) bool {
	base, _ := tag.Base()
	switch base.String() {
	case "es", "pl":
		return true
	}
	return false
}
