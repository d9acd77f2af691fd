package analytics

import "strings"

type Format string

const (
	FormatAll     Format = "all"
	FormatReels   Format = "reels"
	FormatPosts   Format = "posts"
	FormatStories Format = "stories"
)

var Formats = []Format{FormatAll, FormatReels, FormatPosts, FormatStories}

type FormatMultiplier struct {
	Reach      float64
	Engagement float64
	Posts      float64
}

var formatPresets = map[Format]FormatMultiplier{
	FormatAll:     {Reach: 1, Engagement: 1, Posts: 1},
	FormatReels:   {Reach: 1.25, Engagement: 1.1, Posts: 0.7},
	FormatPosts:   {Reach: 0.95, Engagement: 0.95, Posts: 1.1},
	FormatStories: {Reach: 0.8, Engagement: 0.85, Posts: 1.3},
}

// MultiplierFor returns the preset for f, falling back to the "all" preset.
func MultiplierFor(f Format) FormatMultiplier {
	if m, ok := formatPresets[f]; ok {
		return m
	}
	return formatPresets[FormatAll]
}

func (f Format) Known() bool {
	_, ok := formatPresets[f]
	return ok
}

// ParseFormat maps user input onto a known format; anything else is "all".
func ParseFormat(value string) Format {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	if f.Known() {
		return f
	}
	return FormatAll
}
