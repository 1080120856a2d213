package core

import (
	"fmt"
	"path/filepath"
)

// UploadedFile is a file as received from the user. It is not modified after
// construction.
type UploadedFile struct {
	Name string
	Size int64
	Data []byte
}

// NewUploadedFile wraps raw bytes with their original file name.
func NewUploadedFile(name string, data []byte) UploadedFile {
	return UploadedFile{Name: name, Size: int64(len(data)), Data: data}
}

// Ext returns the file name's extension including the dot, or "".
func (f UploadedFile) Ext() string {
	return filepath.Ext(f.Name)
}

// SizeKB returns the size in kilobytes for display.
func (f UploadedFile) SizeKB() float64 {
	return float64(f.Size) / 1024
}

// Load decodes an uploaded file into a table, choosing the decoder by the
// file's extension.
//
// Returns an error wrapping ErrUnsupportedFormat for unknown extensions and a
// *LoadError when the content cannot be decoded.
func Load(file UploadedFile, opts ParseOptions) (*Table, Format, error) {
	ext := file.Ext()
	format, ok := FormatByExt(ext)
	if !ok {
		return nil, Format{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}

	t, err := format.Decode(file.Data, opts)
	if err != nil {
		return nil, format, &LoadError{FileName: file.Name, Err: err}
	}
	return t, format, nil
}
