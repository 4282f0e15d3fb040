package upload

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileInfo describes an uploaded file. The MIME type is sniffed from
// the content, not taken from the file name; the extension falls back
// to the sniffed one when the name carries none.
type FileInfo struct {
	Name      string
	Extension string // with leading dot, e.g. ".wav"
	MIMEType  string
	Size      int
}

// Detect sniffs the content type of a file.
func Detect(name string, content []byte) FileInfo {
	mtype := mimetype.Detect(content)

	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		ext = mtype.Extension()
	}

	return FileInfo{
		Name:      path.Base(name),
		Extension: ext,
		MIMEType:  mtype.String(),
		Size:      len(content),
	}
}
