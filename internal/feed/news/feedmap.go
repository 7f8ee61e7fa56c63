package news

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedMap is the config-driven topic -> RSS feed URL list the worker's pick-feeds
// phase consults (spec §4.9: "For each active topic map to a static list of RSS
// URLs").
type FeedMap struct {
	Topics        map[string][]string `yaml:"topics"`
	DefaultBundle []string            `yaml:"default_bundle"`
	Priority      []string            `yaml:"priority_feeds"`
}

// DefaultFeedMap is used when no config file is present. The default bundle is the
// "Christianity" set (spec §4.9: "fall back to the Christianity default bundle"), and
// the priority feeds are unioned into every cycle regardless of active topics.
var DefaultFeedMap = FeedMap{
	Topics: map[string][]string{
		"Christianity": {
			"https://www.christianitytoday.com/ct/rss.xml",
			"https://www.vaticannews.va/en.rss.xml",
			"https://www.catholicnewsagency.com/rss/news.xml",
		},
		"World News": {
			"https://feeds.bbci.co.uk/news/world/rss.xml",
			"https://rss.nytimes.com/services/xml/rss/nyt/World.xml",
		},
		"Technology": {
			"https://feeds.arstechnica.com/arstechnica/index",
		},
		"Business": {
			"https://feeds.a.dj.com/rss/RSSMarketsMain.xml",
		},
		"Sports": {
			"https://www.espn.com/espn/rss/news",
		},
	},
	DefaultBundle: []string{
		"https://www.christianitytoday.com/ct/rss.xml",
		"https://www.vaticannews.va/en.rss.xml",
		"https://www.catholicnewsagency.com/rss/news.xml",
	},
	Priority: []string{
		"https://www.vaticannews.va/en.rss.xml",
	},
}

// LoadFeedMap reads a FeedMap from a YAML file, falling back to DefaultFeedMap when
// the file cannot be read or parsed.
func LoadFeedMap(path string) (FeedMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultFeedMap, fmt.Errorf("read feed map %s: %w", path, err)
	}
	var m FeedMap
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return DefaultFeedMap, fmt.Errorf("parse feed map %s: %w", path, err)
	}
	if len(m.Topics) == 0 && len(m.DefaultBundle) == 0 {
		return DefaultFeedMap, fmt.Errorf("feed map %s: empty", path)
	}
	return m, nil
}

// Pick returns the deduped union of feed URLs for the active topics, always including
// the priority feeds, and falling back to DefaultBundle when no topic is active
// (spec §4.9 pick-feeds).
func (m FeedMap) Pick(activeTopics []string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(urls []string) {
		for _, u := range urls {
			if seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}

	matched := false
	for _, topic := range activeTopics {
		if urls, ok := m.Topics[topic]; ok {
			add(urls)
			matched = true
		}
	}
	if !matched {
		add(m.DefaultBundle)
	}
	add(m.Priority)
	return out
}
