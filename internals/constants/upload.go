package constants

import (
	"path/filepath"
	"strings"
)

// Upload kinds. Each kind has its own extension allow-list; anything
// outside the list is rejected before the file touches disk.
const (
	UploadKindImage      = "image"
	UploadKindDocument   = "document"
	UploadKindAttachment = "attachment"
)

var uploadAllowlist = map[string][]string{
	UploadKindImage:    {".jpg", ".jpeg", ".png", ".webp"},
	UploadKindDocument: {".pdf", ".doc", ".docx", ".ppt", ".pptx"},
	UploadKindAttachment: {
		".pdf", ".doc", ".docx", ".ppt", ".pptx",
		".jpg", ".jpeg", ".png", ".webp", ".zip",
	},
}

// AllowedUploadExt reports whether filename's extension is allowed for
// the given upload kind.
func AllowedUploadExt(kind, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range uploadAllowlist[kind] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IsImageExt is a shortcut for the image allow-list.
func IsImageExt(filename string) bool {
	return AllowedUploadExt(UploadKindImage, filename)
}
