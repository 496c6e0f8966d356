package storage

import (
	"path/filepath"
	"strings"

	"github.com/openharvest/bargain/pkg/common"
)

const maxExtLen = 10

// GenerateFilename produces a unique storage-safe filename for an uploaded
// blob. The name is a snowflake id plus the original file's lowercased
// extension, so concurrent uploads of equally named files never collide and
// nothing from the client-controlled name reaches the filesystem.
func GenerateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !validExt(ext) {
		ext = ""
	}
	return common.UUID() + ext
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > maxExtLen {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
