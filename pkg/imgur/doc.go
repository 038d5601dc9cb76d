// Package imgur provides a client for the imgur v3 API.
//
// This package includes:
//   - An HTTP client carrying the application client ID on every request
//   - Envelope-validating fetchers for album metadata and image listings
//   - URL-shape recognition mapping imgur URLs to canonical album IDs
//   - Free-text scanning for embedded album references
//   - Typed errors distinguishing transport failures from rejected envelopes
//
// Example usage:
//
//	client := imgur.NewClient(clientID, 30*time.Second, log)
//
//	album, err := client.FetchAlbum("abc123")
//	if err != nil {
//	    if apiErr, ok := err.(*imgur.Error); ok {
//	        switch apiErr.Type {
//	        case imgur.ErrorTypeInvalidResponse:
//	            // remote envelope reported failure
//	        case imgur.ErrorTypeNetwork:
//	            // transport-level failure
//	        }
//	    }
//	}
//
//	images, err := client.FetchAlbumImages(album.ID)
//	for _, img := range images {
//	    body, err := client.DownloadMedia(img.Link)
//	    // stream body to disk
//	}
package imgur
