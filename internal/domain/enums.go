package domain

import (
	"path"
	"strings"
)

// FileType represents the document formats accepted for analysis.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// ContentTypeForKey returns the MIME content type for a document key
// based on its extension, or an error for unsupported formats.
func ContentTypeForKey(key string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	ft, ok := AllowedExtensions[ext]
	if !ok {
		return "", ErrUnsupportedFileType
	}
	return AllowedFileTypes[ft], nil
}
