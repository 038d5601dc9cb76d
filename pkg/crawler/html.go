package crawler

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"imgurgrab/pkg/imgur"
	"imgurgrab/pkg/storage"
)

const (
	documentFile   = "index.html"
	stylesheetFile = "style.css"
)

// albumPage is the view model for the structured album document. Absent
// fields stay empty and the template omits them.
type albumPage struct {
	Title            string
	ID               string
	AccountURL       string
	Created          string
	Views            int
	NSFW             bool
	DescriptionLines []string
	Images           []imageEntry
}

type imageEntry struct {
	Filename         string
	Kind             string
	Title            string
	ID               string
	DescriptionLines []string
}

var albumTemplate = template.Must(template.New("album").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<header>
<h1>{{.Title}}{{if .NSFW}} <span class="nsfw">NSFW</span>{{end}}</h1>
<p class="meta">album {{.ID}}{{if .AccountURL}} &middot; by <a href="https://imgur.com/user/{{.AccountURL}}">{{.AccountURL}}</a>{{end}}{{if .Created}} &middot; {{.Created}}{{end}}{{if .Views}} &middot; {{.Views}} views{{end}}</p>
{{if .DescriptionLines}}<p class="description">{{range $i, $line := .DescriptionLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>{{end}}
</header>
<main>
{{range .Images}}<figure id="{{.ID}}">
{{if eq .Kind "video"}}<video controls src="{{.Filename}}"></video>
{{else if eq .Kind "animated"}}<video autoplay loop muted src="{{.Filename}}"></video>
{{else}}<img src="{{.Filename}}" alt="{{if .Title}}{{.Title}}{{else}}{{.ID}}{{end}}">
{{end}}<figcaption>
{{if .Title}}<strong>{{.Title}}</strong> {{end}}<span class="image-id">{{.ID}}</span>
{{if .DescriptionLines}}<p>{{range $i, $line := .DescriptionLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>{{end}}
</figcaption>
</figure>
{{end}}</main>
</body>
</html>
`))

// stylesheet is the fixed presentation asset written next to every album
// document.
const stylesheet = `body {
  max-width: 860px;
  margin: 2rem auto;
  padding: 0 1rem;
  font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
  color: #1b1b1b;
  background: #f5f5f5;
}

header h1 {
  margin-bottom: 0.25rem;
}

.meta {
  color: #666;
  font-size: 0.875rem;
}

.nsfw {
  color: #fff;
  background: #c0392b;
  border-radius: 3px;
  padding: 0.1rem 0.4rem;
  font-size: 0.6em;
  vertical-align: middle;
}

.description {
  white-space: normal;
}

figure {
  margin: 2rem 0;
}

figure img,
figure video {
  max-width: 100%;
  border-radius: 4px;
  display: block;
}

figcaption {
  margin-top: 0.5rem;
  font-size: 0.9rem;
}

.image-id {
  color: #999;
  font-size: 0.8em;
}
`

// writeAlbumDocument renders the single structured document for an album
// plus its stylesheet.
func writeAlbumDocument(store *storage.Manager, meta *imgur.Album, title string, records []MaterializedImage) error {
	page := albumPage{
		Title:            title,
		ID:               meta.ID,
		AccountURL:       meta.AccountURL,
		Views:            meta.Views,
		NSFW:             meta.NSFW,
		DescriptionLines: splitLines(meta.Description),
	}

	if meta.Created > 0 {
		page.Created = time.Unix(meta.Created, 0).UTC().Format("2006-01-02")
	}

	for _, rec := range records {
		page.Images = append(page.Images, imageEntry{
			Filename:         rec.Filename,
			Kind:             string(rec.Kind),
			Title:            rec.Title,
			ID:               rec.ID,
			DescriptionLines: splitLines(rec.Description),
		})
	}

	var buf bytes.Buffer
	if err := albumTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render album document: %w", err)
	}

	if err := store.WriteTextFile(documentFile, buf.String()); err != nil {
		return err
	}

	return store.WriteTextFile(stylesheetFile, stylesheet)
}

// splitLines breaks a free-text field into lines for <br>-joined
// rendering. Empty text yields nil.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
