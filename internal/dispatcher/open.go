package dispatcher

import "strings"

type OpenKind string

const (
	OpenApplication OpenKind = "application"
	OpenWebsite     OpenKind = "website"
)

var websiteSuffixes = []string{".com", ".org", ".net", ".edu", ".gov", ".io"}

// ClassifyOpenTarget decides whether "open <target>" names a website or an
// application and returns the cleaned target for that kind.
func ClassifyOpenTarget(target string) (OpenKind, string) {
	target = strings.ToLower(strings.TrimSpace(target))

	isSite := strings.Contains(target, "website") || strings.Contains(target, "site")
	for _, suffix := range websiteSuffixes {
		if strings.Contains(target, suffix) {
			isSite = true
			break
		}
	}

	if !isSite {
		return OpenApplication, target
	}

	url := strings.ReplaceAll(target, "website", "")
	url = strings.ReplaceAll(url, "site", "")
	return OpenWebsite, strings.TrimSpace(url)
}
