package analytics

type Request struct {
	Seed      uint32 `json:"seed"`
	RangeDays int    `json:"rangeDays"`
	Format    Format `json:"format"`
}

type Day struct {
	Label                 string  `json:"label"`
	Followers             int     `json:"followers"`
	Reach                 int     `json:"reach"`
	EngagementRatePercent float64 `json:"engagementRatePercent"`
	PostsCount            int     `json:"postsCount"`
}

type ReachByFormat struct {
	Reels   int `json:"reels"`
	Posts   int `json:"posts"`
	Stories int `json:"stories"`
}

func (r ReachByFormat) Total() int {
	return r.Reels + r.Posts + r.Stories
}

type Summary struct {
	FollowersTotal        int     `json:"followersTotal"`
	FollowersDeltaPercent float64 `json:"followersDeltaPercent"`
	ReachAverage          float64 `json:"reachAverage"`
	InteractionsTotal     int     `json:"interactionsTotal"`
	BestHour              string  `json:"bestHour"`
}

type Series struct {
	Request       Request       `json:"request"`
	Days          []Day         `json:"days"`
	ReachByFormat ReachByFormat `json:"reachByFormat"`
	Summary       Summary       `json:"summary"`
}

func (s *Series) Labels() []string {
	out := make([]string, len(s.Days))
	for i, d := range s.Days {
		out[i] = d.Label
	}
	return out
}

func (s *Series) TotalReach() int {
	total := 0
	for _, d := range s.Days {
		total += d.Reach
	}
	return total
}
