package video

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChannelMap is the config-driven topic -> channel list the worker's pick-channels
// phase consults (spec §4.10: "Channel list is keyed by active topics"). HumanNames
// maps a channel handle to a humanized search query, used when the direct scrape
// falls back to a topic-search round for a pinned entity's channel (spec §4.10:
// "a mapped humanized name for pinned entities").
type ChannelMap struct {
	Topics     map[string][]string `yaml:"topics"`
	Priority   []string            `yaml:"priority_channels"`
	HumanNames map[string]string   `yaml:"human_names"`
}

// DefaultChannelMap seeds the worker when no config file is present.
var DefaultChannelMap = ChannelMap{
	Topics: map[string][]string{
		"Christianity": {"@VaticanNews", "@BillyGrahamEA"},
		"World News":   {"@bbcnews"},
		"Technology":   {"@verge"},
	},
	Priority: []string{"@VaticanNews"},
	HumanNames: map[string]string{
		"@VaticanNews":   "Vatican News",
		"@BillyGrahamEA": "Billy Graham Evangelistic Association",
	},
}

// LoadChannelMap reads a ChannelMap from YAML, falling back to DefaultChannelMap.
func LoadChannelMap(path string) (ChannelMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultChannelMap, fmt.Errorf("read channel map %s: %w", path, err)
	}
	var m ChannelMap
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return DefaultChannelMap, fmt.Errorf("parse channel map %s: %w", path, err)
	}
	if len(m.Topics) == 0 {
		return DefaultChannelMap, fmt.Errorf("channel map %s: empty", path)
	}
	return m, nil
}

// Pick returns the deduped union of channels for the active topics, always including
// the priority channels (spec §4.10).
func (m ChannelMap) Pick(activeTopics []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(channels []string) {
		for _, c := range channels {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, topic := range activeTopics {
		add(m.Topics[topic])
	}
	add(m.Priority)
	return out
}

// HumanName returns the humanized search query for a channel, falling back to the
// channel handle itself when unmapped.
func (m ChannelMap) HumanName(channel string) string {
	if name, ok := m.HumanNames[channel]; ok {
		return name
	}
	return channel
}
