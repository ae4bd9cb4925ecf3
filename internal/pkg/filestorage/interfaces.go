package filestorage

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArchivePrefix is the top-level folder of archived roster uploads
const ArchivePrefix = "rosters"

// Archiver stores raw uploads for later audit
type Archiver interface {
	// Store writes data under key and returns the stored location
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ArchiveKey builds rosters/YYYY/MM/DD/<uuid>-<filename> for an upload received at now.
func ArchiveKey(filename string, now time.Time) string {
	return path.Join(
		ArchivePrefix,
		now.UTC().Format("2006/01/02"),
		uuid.New().String()+"-"+sanitizeFilename(filename),
	)
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == '/' || r == ':':
			return -1
		default:
			return r
		}
	}, name)
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}
