package adapter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Intent is one entry in the fixed intent vocabulary the Orchestrator (C8) expands a
// query into (spec §4.8 step 4: "general, academic, christ_data, social, video,
// commerce, news"). Templates are formatted with the (possibly topic-constrained)
// query text; site-operator dorks (spec §4.3 "Site-operator dorks") are expressed here
// as templates containing `site:` clauses rather than as a separate adapter.
type Intent struct {
	Name      string   `yaml:"name"`
	Templates []string `yaml:"templates"`
}

// IntentSet is the full config-driven intent vocabulary, loaded once at startup.
type IntentSet struct {
	Intents []Intent `yaml:"intents"`
}

// DefaultIntents is used when no config file is present, covering every intent spec
// §4.8 names with a representative template so the module runs out of the box.
var DefaultIntents = IntentSet{
	Intents: []Intent{
		{Name: "general", Templates: []string{"{{query}}"}},
		{Name: "academic", Templates: []string{"{{query}} site:.edu OR site:.ac.in OR filetype:pdf"}},
		{Name: "christ_data", Templates: []string{"{{query}} site:vaticannews.va OR site:christianitytoday.com OR site:catholicnewsagency.com"}},
		{Name: "social", Templates: []string{"{{query}} site:reddit.com OR site:twitter.com"}},
		{Name: "video", Templates: []string{"{{query}} site:youtube.com"}},
		{Name: "commerce", Templates: []string{"{{query}} site:amazon.in OR site:flipkart.com"}},
		{Name: "news", Templates: []string{"{{query}} news"}},
	},
}

// LoadIntents reads an IntentSet from a YAML file, falling back to DefaultIntents (and
// logging nothing itself — callers own the fallback-with-warning logging convention per
// spec §2.1) when the file cannot be read.
func LoadIntents(path string) (IntentSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultIntents, fmt.Errorf("read intents config %s: %w", path, err)
	}
	var set IntentSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return DefaultIntents, fmt.Errorf("parse intents config %s: %w", path, err)
	}
	if len(set.Intents) == 0 {
		return DefaultIntents, fmt.Errorf("intents config %s: no intents defined", path)
	}
	return set, nil
}

// Expand formats every template of every named intent in activeIntents with query,
// returning the flat list of expanded query strings the Orchestrator fans out over
// (spec §4.8 step 4). Unknown intent names are skipped, not errored — a misconfigured
// intent name should degrade gracefully, not abort a request.
func (s IntentSet) Expand(query string, activeIntents []string) []string {
	want := make(map[string]bool, len(activeIntents))
	for _, n := range activeIntents {
		want[n] = true
	}
	var out []string
	for _, intent := range s.Intents {
		if !want[intent.Name] {
			continue
		}
		for _, tmpl := range intent.Templates {
			out = append(out, strings.ReplaceAll(tmpl, "{{query}}", query))
		}
	}
	return out
}

// AllIntentNames returns every intent name in the set, in config order.
func (s IntentSet) AllIntentNames() []string {
	out := make([]string, len(s.Intents))
	for i, intent := range s.Intents {
		out[i] = intent.Name
	}
	return out
}
