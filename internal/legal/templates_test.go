package legal

import "testing"

func TestExpandSubstitutesQuery(t *testing.T) {
	out := expand([]string{"{{query}} site:example.com", "plain {{query}}"}, "article 25")
	want := []string{"article 25 site:example.com", "plain article 25"}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("expand[%d] = %q, want %q", i, out[i], w)
		}
	}
}

func TestMatchesLegalVocabulary(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Supreme Court strikes down amendment", true},
		{"local cricket match results", false},
		{"Tribunal orders stay on eviction", true},
	}
	for _, c := range cases {
		if got := matchesLegalVocabulary(c.text); got != c.want {
			t.Errorf("matchesLegalVocabulary(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
