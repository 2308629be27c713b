package config

import (
	"slices"
	"testing"
)

func TestFileForHost(t *testing.T) {
	t.Parallel()

	file := &File{
		Defaults: SiteConfig{
			UserAgent: "default-agent",
			Headers:   map[string]string{"X-Shared": "yes"},
		},
		Sites: map[string]SiteConfig{
			"intranet.example.com": {
				Cookie:         "session=abc",
				Depth:          4,
				Headers:        map[string]string{"X-Custom": "1"},
				IgnorePatterns: []string{"/logout*"},
			},
			"other.example.com": {
				UserAgent: "site-agent",
			},
		},
	}

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		got := file.ForHost("nowhere.example.com")
		if got.UserAgent != "default-agent" {
			t.Errorf("UserAgent = %q, want %q", got.UserAgent, "default-agent")
		}
		if got.Cookie != "" || got.Depth != 0 {
			t.Errorf("got %+v, want defaults only", got)
		}
	})

	t.Run("site overrides merge over defaults", func(t *testing.T) {
		t.Parallel()

		got := file.ForHost("intranet.example.com")
		if got.Cookie != "session=abc" {
			t.Errorf("Cookie = %q, want %q", got.Cookie, "session=abc")
		}
		if got.Depth != 4 {
			t.Errorf("Depth = %d, want 4", got.Depth)
		}
		if got.UserAgent != "default-agent" {
			t.Errorf("UserAgent = %q, want the default preserved", got.UserAgent)
		}
		if got.Headers["X-Shared"] != "yes" || got.Headers["X-Custom"] != "1" {
			t.Errorf("Headers = %v, want shared and custom merged", got.Headers)
		}
		if want := []string{"/logout*"}; !slices.Equal(got.IgnorePatterns, want) {
			t.Errorf("IgnorePatterns = %v, want %v", got.IgnorePatterns, want)
		}
	})

	t.Run("site user agent wins", func(t *testing.T) {
		t.Parallel()

		if got := file.ForHost("other.example.com"); got.UserAgent != "site-agent" {
			t.Errorf("UserAgent = %q, want %q", got.UserAgent, "site-agent")
		}
	})

	t.Run("merge does not mutate defaults", func(t *testing.T) {
		t.Parallel()

		_ = file.ForHost("intranet.example.com")
		if _, ok := file.Defaults.Headers["X-Custom"]; ok {
			t.Error("defaults headers gained a site-specific entry")
		}
	})
}
