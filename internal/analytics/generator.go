package analytics

import "time"

const (
	DefaultRangeDays = 30

	minEngagement = 0.8
	maxEngagement = 12.5
	minGain       = 5
)

var bestHourSlots = []string{"18:00", "19:00", "20:00", "21:00", "22:00", "23:00"}

// Generate builds the mock series for req ending on now's calendar day.
// The output depends only on req and the date of now.
func Generate(req Request, now time.Time) *Series {
	if req.Format == "" {
		req.Format = FormatAll
	}
	if req.RangeDays <= 0 {
		req.RangeDays = DefaultRangeDays
	}

	rng := NewMulberry32(MixSeed(req.Seed, string(req.Format), req.RangeDays))
	mult := MultiplierFor(req.Format)

	series := &Series{
		Request: req,
		Days:    make([]Day, 0, req.RangeDays),
	}

	followers := round(rng.Draw(8500, 6000))
	interactionsTotal := 0

	for i := req.RangeDays - 1; i >= 0; i-- {
		dayFactor := rng.Draw(0.85, 0.3)
		reach := round(float64(rng.Draw(800, 1600)*mult.Reach) * dayFactor)
		engagement := clamp(float64(rng.Draw(3, 9)*mult.Engagement), minEngagement, maxEngagement)
		posts := max(0, round(float64(rng.Draw(1, 3)*mult.Posts)))

		gain := max(minGain, round(float64(rng.Draw(20, 90)*mult.Reach)))
		followers += gain

		interactions := round(float64(float64(reach)*(engagement/100)) * rng.Draw(0.9, 0.3))
		interactionsTotal += interactions

		series.Days = append(series.Days, Day{
			Label:                 dayLabel(now, i),
			Followers:             followers,
			Reach:                 reach,
			EngagementRatePercent: toFixed2(engagement),
			PostsCount:            posts,
		})
	}

	totalReach := series.TotalReach()
	series.ReachByFormat = splitReach(totalReach, req.Format)

	first := series.Days[0].Followers
	last := series.Days[len(series.Days)-1].Followers
	delta := 0.0
	if first != 0 {
		delta = float64(last-first) / float64(first) * 100
	}

	series.Summary = Summary{
		FollowersTotal:        last,
		FollowersDeltaPercent: delta,
		ReachAverage:          float64(totalReach) / float64(len(series.Days)),
		InteractionsTotal:     interactionsTotal,
		BestHour:              bestHourSlots[int(rng.Next()*float64(len(bestHourSlots)))],
	}
	return series
}

// splitReach attributes reach to the requested format. Unknown formats get
// nothing; "all" uses a fixed 45/35/20 split without correcting rounding.
func splitReach(total int, format Format) ReachByFormat {
	if format != FormatAll {
		var out ReachByFormat
		switch format {
		case FormatReels:
			out.Reels = total
		case FormatPosts:
			out.Posts = total
		case FormatStories:
			out.Stories = total
		}
		return out
	}
	t := float64(total)
	return ReachByFormat{
		Reels:   round(t * 0.45),
		Posts:   round(t * 0.35),
		Stories: round(t * 0.2),
	}
}

func dayLabel(now time.Time, daysAgo int) string {
	return now.AddDate(0, 0, -daysAgo).Format("02/01")
}
