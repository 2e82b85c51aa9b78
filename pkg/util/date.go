package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DateStamp inserts the ISO date before the file extension, so repeated
// batch runs never clobber an earlier output table.
func DateStamp(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%s%s", base, now.Format("2006-01-02"), ext)
}

// PartStamp appends a worker partition index before the file extension.
func PartStamp(path string, part int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", base, part, ext)
}
