package crawler

import (
	"fmt"
	"path/filepath"

	"imgurgrab/pkg/imgur"
	"imgurgrab/pkg/slug"
	"imgurgrab/pkg/storage"
)

// DefaultAlbumTitle is substituted when an album has no title.
const DefaultAlbumTitle = "Unknown Artists - Untitled Album"

// albumMetadataFile is the discrete-mode album metadata sidecar.
const albumMetadataFile = "album-metadata.txt"

// process executes one crawl task to completion. Album-scoped failures
// (unresolvable source, rejected or unreachable endpoints, filesystem
// trouble) are logged and swallowed so the crawl continues with the next
// task. Only a task with no target at all returns an error.
func (c *Crawler) process(t Task) error {
	albumID := t.AlbumID
	if albumID == "" {
		if t.URL == "" {
			return ErrEmptyTask
		}
		id, ok := imgur.ResolveAlbumID(t.URL)
		if !ok {
			c.logger.ErrorWithFields("source URL does not reference an album", map[string]interface{}{
				"url": t.URL,
			})
			return nil
		}
		albumID = id
	}

	// Commit to the seen-set before fetching anything: two references to
	// the same album, or two albums referencing each other, process once.
	if !c.seen.Add(albumID) {
		c.logger.DebugWithFields("album already processed", map[string]interface{}{
			"album_id": albumID,
		})
		return nil
	}

	c.throttle()
	meta, err := c.client.FetchAlbum(albumID)
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch album metadata, skipping album", map[string]interface{}{
			"album_id": albumID,
			"error":    err.Error(),
		})
		return nil
	}

	title := meta.Title
	if title == "" {
		title = DefaultAlbumTitle
	}

	c.logger.InfoWithFields("processing album", map[string]interface{}{
		"album_id": albumID,
		"title":    title,
	})

	dest := t.Dest
	if dest == "" {
		dest = c.cfg.Output.BaseDirectory
	}

	albumDir := filepath.Join(dest, slug.Make(title))
	store, err := storage.NewManager(albumDir)
	if err != nil {
		c.logger.ErrorWithFields("failed to prepare album directory, skipping album", map[string]interface{}{
			"album_id": albumID,
			"dir":      albumDir,
			"error":    err.Error(),
		})
		return nil
	}

	// Albums referenced from the album's own description are discovered
	// here, independent of per-image discovery during materialization.
	if c.cfg.Crawl.Recursive {
		c.enqueueDiscovered(meta.Description)
	}

	c.throttle()
	images, err := c.client.FetchAlbumImages(albumID)
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch image listing, skipping album", map[string]interface{}{
			"album_id": albumID,
			"error":    err.Error(),
		})
		return nil
	}

	var namer *slug.Namer
	if c.cfg.Output.HTML {
		namer = slug.NewNamer()
	} else {
		namer = slug.NewNamer(store.Existing()...)
	}

	records := make([]MaterializedImage, 0, len(images))
	for i, img := range images {
		rec, err := c.materialize(img, store, namer, i)
		if err != nil {
			c.logger.ErrorWithFields("failed to materialize image, skipping it", map[string]interface{}{
				"album_id": albumID,
				"image_id": img.ID,
				"error":    err.Error(),
			})
			continue
		}
		records = append(records, *rec)
	}

	if c.cfg.Output.HTML {
		if err := writeAlbumDocument(store, meta, title, records); err != nil {
			c.logger.ErrorWithFields("failed to write album document", map[string]interface{}{
				"album_id": albumID,
				"error":    err.Error(),
			})
		}
	} else {
		if err := writeAlbumMetadata(store, meta, title, albumID); err != nil {
			c.logger.ErrorWithFields("failed to write album metadata", map[string]interface{}{
				"album_id": albumID,
				"error":    err.Error(),
			})
		}
	}

	c.logger.InfoWithFields("album done", map[string]interface{}{
		"album_id": albumID,
		"images":   len(records),
	})

	return nil
}

// writeAlbumMetadata writes the discrete-mode album metadata text file.
func writeAlbumMetadata(store *storage.Manager, meta *imgur.Album, title, albumID string) error {
	content := fmt.Sprintf("Title: %s\nAlbum ID: %s\nDescription: %s\n",
		title, albumID, meta.Description)
	if meta.Views > 0 {
		content += fmt.Sprintf("Views: %d\n", meta.Views)
	}
	if meta.NSFW {
		content += "NSFW: yes\n"
	}
	return store.WriteTextFile(albumMetadataFile, content)
}
