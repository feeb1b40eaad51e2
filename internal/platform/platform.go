// Package platform provides the fixed set of known job boards, platform name
// normalization, and manual-search URL templates.
package platform

import (
	"net/url"
	"strings"
)

// Platform identifies a known job board.
type Platform string

const (
	// Platform104 is 104.com.tw, Taiwan's largest job board.
	Platform104 Platform = "104"
	// Platform1111 is 1111.com.tw.
	Platform1111 Platform = "1111"
	// PlatformCakeResume is CakeResume.
	PlatformCakeResume Platform = "CakeResume"
	// PlatformLinkedIn is LinkedIn Jobs.
	PlatformLinkedIn Platform = "LinkedIn"
	// PlatformOther is any board outside the fixed set.
	PlatformOther Platform = "Other"
)

// All lists every member of the fixed platform set.
func All() []Platform {
	return []Platform{Platform104, Platform1111, PlatformCakeResume, PlatformLinkedIn, PlatformOther}
}

// Normalize maps a free-form platform name from a job record onto the fixed
// set. Anything unrecognized, including Indeed, becomes Other.
func Normalize(raw string) Platform {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(name, "104"):
		return Platform104
	case strings.Contains(name, "1111"):
		return Platform1111
	case strings.Contains(name, "cake"):
		return PlatformCakeResume
	case strings.Contains(name, "linkedin"):
		return PlatformLinkedIn
	default:
		return PlatformOther
	}
}

// SearchURL builds the manual-search fallback URL for a platform with the
// query term percent-encoded. Other falls back to a Google search.
func SearchURL(p Platform, query string) string {
	q := url.QueryEscape(query)
	switch p {
	case Platform104:
		return "https://www.104.com.tw/jobs/search/?keyword=" + q
	case Platform1111:
		return "https://www.1111.com.tw/search/job?ks=" + q
	case PlatformCakeResume:
		return "https://www.cake.me/jobs?q=" + q
	case PlatformLinkedIn:
		return "https://www.linkedin.com/jobs/search/?keywords=" + q
	default:
		return "https://www.google.com/search?q=" + q + "+jobs"
	}
}
