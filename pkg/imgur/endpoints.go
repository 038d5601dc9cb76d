package imgur

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// BaseURL is the base URL for the imgur API.
	BaseURL = "https://api.imgur.com/3"

	// AlbumEndpoint is the endpoint pattern for album metadata.
	AlbumEndpoint = "/album/%s"

	// AlbumImagesEndpoint is the endpoint pattern for an album's image listing.
	AlbumImagesEndpoint = "/album/%s/images"
)

// GetAlbumURL constructs the URL for fetching an album's metadata.
func GetAlbumURL(baseURL, albumID string) string {
	return baseURL + fmt.Sprintf(AlbumEndpoint, url.PathEscape(albumID))
}

// GetAlbumImagesURL constructs the URL for fetching an album's image listing.
func GetAlbumImagesURL(baseURL, albumID string) string {
	return baseURL + fmt.Sprintf(AlbumImagesEndpoint, url.PathEscape(albumID))
}

// urlPattern matches embedded URLs in free text: a scheme followed by the
// character class URLs are made of, up to the first character that cannot
// appear in one. The $-_ range spans the ASCII block holding slashes,
// colons and the query/fragment separators.
var urlPattern = regexp.MustCompile(`https?://(?:[a-zA-Z0-9$-_@.&+!*(),]|%[0-9a-fA-F]{2})+`)

// ResolveAlbumID normalizes a source URL into a canonical album ID.
//
// Recognized shapes, checked in order:
//
//	https://imgur.com/gallery/<id>
//	https://imgur.com/a/<id>
//	https://imgur.com/r/<subreddit>/<id>
//
// URLs on any other host, and imgur URLs of any other shape, yield ok=false.
func ResolveAlbumID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host != "imgur.com" && !strings.HasSuffix(host, ".imgur.com") {
		return "", false
	}

	if _, after, found := strings.Cut(u.Path, "/gallery/"); found {
		return cleanAlbumID(after)
	}

	if _, after, found := strings.Cut(u.Path, "/a/"); found {
		return cleanAlbumID(after)
	}

	if strings.Contains(u.Path, "/r/") {
		// subreddit-tagged album: the ID is the final path segment
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		return cleanAlbumID(segments[len(segments)-1])
	}

	return "", false
}

// cleanAlbumID strips trailing path noise and rejects empty IDs.
func cleanAlbumID(id string) (string, bool) {
	id = strings.Trim(id, "/")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", false
	}
	return id, true
}

// FindAlbumIDs extracts canonical album IDs from embedded URLs in arbitrary
// free text. URLs that do not resolve to an album are silently dropped;
// duplicates collapse, keeping first-seen order.
func FindAlbumIDs(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string

	for _, match := range urlPattern.FindAllString(text, -1) {
		id, ok := ResolveAlbumID(match)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
