package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"imgurgrab/pkg/imgur"
	"imgurgrab/pkg/slug"
	"imgurgrab/pkg/storage"
)

// Kind classifies materialized media for presentation.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	// KindAnimated is imgur's gifv: a looping video with no audio.
	KindAnimated Kind = "animated"
)

// MaterializedImage is the record of one downloaded album entry, in the
// order it appeared in the listing.
type MaterializedImage struct {
	Filename    string
	Kind        Kind
	Title       string
	ID          string
	Description string
}

var videoSuffixes = map[string]bool{
	"mp4":  true,
	"webm": true,
	"ogv":  true,
	"ogg":  true,
}

// materialize downloads one album entry to disk and returns its record.
// index is the entry's zero-based position in the listing; it prefixes
// the filename so listing order survives on disk.
func (c *Crawler) materialize(img imgur.Image, store *storage.Manager, namer *slug.Namer, index int) (*MaterializedImage, error) {
	suffix := mediaSuffix(img.Link, img.Type)

	title := img.Title
	if title == "" {
		title = img.ID
	}

	base := fmt.Sprintf("%04d-%s", index, namer.Slug(title))
	filename := base + "." + suffix

	if store.HasBase(base) {
		c.logger.DebugWithFields("file already exists, skipping download", map[string]interface{}{
			"image_id": img.ID,
			"filename": filename,
		})
	} else {
		c.logger.DebugWithFields("downloading image", map[string]interface{}{
			"image_id": img.ID,
			"url":      img.Link,
			"filename": filename,
		})

		body, err := c.client.DownloadMedia(img.Link)
		if err != nil {
			return nil, err
		}
		defer body.Close()

		if err := store.SaveStream(body, filename); err != nil {
			return nil, err
		}
	}

	// Discrete mode keeps captions as sidecar text files; the HTML
	// document carries them inline instead.
	if !c.cfg.Output.HTML && img.Description != "" {
		content := fmt.Sprintf("Title: %s\nDescription: %s\n", title, img.Description)
		if err := store.WriteTextFile(base+".txt", content); err != nil {
			return nil, err
		}
	}

	// Per-image discovery runs in both output modes.
	if c.cfg.Crawl.Recursive && img.Description != "" {
		c.enqueueDiscovered(img.Description)
	}

	return &MaterializedImage{
		Filename:    filename,
		Kind:        classify(suffix),
		Title:       img.Title,
		ID:          img.ID,
		Description: img.Description,
	}, nil
}

// mediaSuffix derives the filename suffix from the source URL's trailing
// extension, falling back to the declared MIME subtype when the URL has
// no plausible one. jpeg normalizes to jpg.
func mediaSuffix(link, mimeType string) string {
	var suffix string

	if u, err := url.Parse(link); err == nil {
		segment := u.Path
		if i := strings.LastIndexByte(segment, '/'); i >= 0 {
			segment = segment[i+1:]
		}
		if i := strings.LastIndexByte(segment, '.'); i >= 0 {
			suffix = segment[i+1:]
		}
	}

	if !plausibleSuffix(suffix) {
		if i := strings.IndexByte(mimeType, '/'); i >= 0 {
			suffix = mimeType[i+1:]
		}
	}

	if suffix == "jpeg" {
		suffix = "jpg"
	}

	return suffix
}

// plausibleSuffix accepts short alphanumeric extensions only.
func plausibleSuffix(s string) bool {
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// classify maps a filename suffix onto a media kind.
func classify(suffix string) Kind {
	switch {
	case videoSuffixes[suffix]:
		return KindVideo
	case suffix == "gifv":
		return KindAnimated
	default:
		return KindImage
	}
}
