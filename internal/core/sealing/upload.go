package sealing

import (
	"errors"

	"github.com/h2non/filetype"
)

// MIMEPDF is the only MIME type the upload path accepts.
const MIMEPDF = "application/pdf"

// ErrUnsupportedFileType rejects a staged file before it ever reaches the
// intake workflow; selection of a non-PDF is a no-op plus user feedback,
// not a state transition.
var ErrUnsupportedFileType = errors.New("only PDF files are supported")

// Upload is a client-side staged PDF. It exists only until submission:
// cleared on success or on an explicit change of file, never persisted.
type Upload struct {
	Filename  string
	MIMEType  string
	SizeBytes int64
	Content   []byte
}

// NewUpload stages a file for the upload path. The content is sniffed, not
// trusted from the filename or the declared content type: anything that is
// not a PDF is rejected here.
func NewUpload(filename string, content []byte) (*Upload, error) {
	if len(content) == 0 || !filetype.Is(content, "pdf") {
		return nil, ErrUnsupportedFileType
	}
	return &Upload{
		Filename:  filename,
		MIMEType:  MIMEPDF,
		SizeBytes: int64(len(content)),
		Content:   content,
	}, nil
}
