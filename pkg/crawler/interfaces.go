package crawler

import (
	"io"

	"imgurgrab/pkg/imgur"
)

// APIClient defines the imgur API operations the crawler depends on.
type APIClient interface {
	FetchAlbum(albumID string) (*imgur.Album, error)
	FetchAlbumImages(albumID string) ([]imgur.Image, error)
	DownloadMedia(mediaURL string) (io.ReadCloser, error)
}
