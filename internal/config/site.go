package config

// SiteConfig holds per-host overrides applied when the crawl target's
// host matches. This lets one config file serve engagements against
// multiple sites without repeating flags.
type SiteConfig struct {
	// Cookie is an HTTP cookie header value to send with every request.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers for requests to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// UserAgent overrides the User-Agent for this host.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Depth overrides the crawl depth for this host. Zero means use the
	// global depth.
	Depth int `yaml:"depth,omitempty"`

	// IgnorePatterns are URL path glob patterns to skip while crawling.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns restrict crawling to matching URL paths when set.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// File represents the structure of the .webwords configuration file.
type File struct {
	// Sites maps hostnames to their overrides.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every host unless overridden per site.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// ForHost returns the merged configuration for a hostname: defaults
// overlaid with the host's own entry.
func (f *File) ForHost(host string) SiteConfig {
	result := f.Defaults

	site, ok := f.Sites[host]
	if !ok {
		return result
	}

	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if site.Depth != 0 {
		result.Depth = site.Depth
	}
	if len(site.Headers) > 0 {
		// Copy before merging so the shared defaults map stays untouched.
		merged := make(map[string]string, len(result.Headers)+len(site.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range site.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}
	if len(site.IgnorePatterns) > 0 {
		result.IgnorePatterns = site.IgnorePatterns
	}
	if len(site.FollowPatterns) > 0 {
		result.FollowPatterns = site.FollowPatterns
	}

	return result
}
