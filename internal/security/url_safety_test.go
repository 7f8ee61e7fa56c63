package security

import "testing"

func TestSafe(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want bool
	}{
		{"valid https", "https://example.com/article", true},
		{"valid http", "http://example.com/a", true},
		{"ftp scheme rejected", "ftp://example.com/a", false},
		{"localhost rejected", "http://localhost/admin", false},
		{"loopback literal rejected", "http://127.0.0.1/admin", false},
		{"unspecified literal rejected", "http://0.0.0.0/", false},
		{"ipv6 loopback literal rejected", "http://[::1]/", false},
		{"private 10.x literal rejected", "http://10.1.2.3/", false},
		{"private 172.16 literal rejected", "http://172.16.0.5/", false},
		{"private 192.168 literal rejected", "http://192.168.1.1/", false},
		{"dotlocal rejected", "http://printer.local/", false},
		{"dotinternal rejected", "http://svc.internal/", false},
		{"dotcorp rejected", "http://host.corp/", false},
		{"malformed url rejected", "://not a url", false},
		{"empty host rejected", "http:///path", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Safe(tc.url); got != tc.want {
				t.Errorf("Safe(%q) = %v, want %v", tc.url, got, tc.want)
			}
		})
	}
}

func TestSafeClosure(t *testing.T) {
	blocked := []string{
		"http://localhost:8080/",
		"http://0.0.0.0/",
		"http://[::1]/",
		"http://10.0.0.1/",
		"http://172.31.255.255/",
		"http://192.168.100.1/",
		"http://anything.local/",
		"http://anything.internal/",
		"http://anything.corp/",
		"http://anything.localdomain/",
	}
	for _, u := range blocked {
		if Safe(u) {
			t.Errorf("expected %q to be unsafe", u)
		}
	}
}

func TestCheckSafe(t *testing.T) {
	if err := CheckSafe("http://localhost/"); err == nil {
		t.Fatal("expected error for unsafe url")
	}
	if err := CheckSafe("https://example.com/"); err != nil {
		t.Fatalf("unexpected error for safe url: %v", err)
	}
}
