package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/sweeper/internal/core"
)

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files.
const multipartMemory = 32 << 20

// readUploads extracts every file part named "files" (or "file") from a
// multipart request. Parts larger than the per-file limit are returned
// without content so the service reports them as too large.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]core.UploadedFile, error) {
	maxFile := s.cfg.Upload.MaxFileSize
	maxFiles := s.cfg.Upload.MaxFiles
	if maxFile > 0 && maxFiles > 0 {
		// Room for every file at the limit plus form overhead.
		r.Body = http.MaxBytesReader(w, r.Body, maxFile*int64(maxFiles)+multipartMemory)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, core.ErrNoFile
		}
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	headers = append(headers, r.MultipartForm.File["file"]...)
	if len(headers) == 0 {
		return nil, core.ErrNoFile
	}
	if maxFiles > 0 && len(headers) > maxFiles {
		return nil, validationError{problems: []string{fmt.Sprintf("files must have at most %d entries", maxFiles)}}
	}

	files := make([]core.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if maxFile > 0 && fh.Size > maxFile {
			files = append(files, core.UploadedFile{Name: fh.Filename, Size: fh.Size})
			continue
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, core.NewUploadedFile(fh.Filename, data))
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
