// Package crawler implements the album crawl orchestrator: a
// single-threaded, self-feeding work queue over imgur albums.
//
// The unit of work is "process this album". Processing an album fetches
// its metadata and image listing, materializes every image to disk in
// listing order, and, with recursive discovery enabled, scans album and
// image descriptions for references to further albums and queues those.
// A monotonic seen-set guarantees each distinct album is processed at
// most once, so crawls over cyclic cross-references still terminate.
//
// Album-scoped fetch failures are logged and skipped; they never stop
// the crawl. Each album is serialized either as discrete text files next
// to its media or as a single HTML document with a stylesheet.
package crawler
