package enrich

import "testing"

func TestBlockedImage(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/images/hero.jpg":          false,
		"https://example.com/assets/site-logo.png":     true,
		"https://news.google.com/api/attachment/logo":  true,
		"https://cdn.example.com/favicon-32.ico":       true,
		"https://gstatic.com/images/branding/x.png":    true,
		"https://example.com/content/2024/photo1.jpg":  false,
		"https://example.com/avatar/default-user.png":  true,
	}
	for url, want := range cases {
		if got := blockedImage(url); got != want {
			t.Errorf("blockedImage(%q) = %v, want %v", url, got, want)
		}
	}
}
