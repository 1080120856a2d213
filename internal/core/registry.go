package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MIME types offered with downloads.
const (
	MIMECSV   = "text/csv"
	MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DecodeFunc decodes raw file bytes into a table.
type DecodeFunc func(data []byte, opts ParseOptions) (*Table, error)

// EncodeFunc serializes a table.
type EncodeFunc func(t *Table) ([]byte, error)

// Format describes a tabular file format the sweeper can read and write.
type Format struct {
	Key    string // Stable identifier: "csv", "excel"
	Label  string // Display name: "CSV", "Excel"
	Ext    string // File extension including the dot, matched case-sensitively
	MIME   string // Content type for downloads
	Decode DecodeFunc
	Encode EncodeFunc
}

var (
	formats   = make(map[string]Format) // keyed by Key
	formatsMu sync.RWMutex
)

func init() {
	RegisterFormat(Format{Key: "csv", Label: "CSV", Ext: ".csv", MIME: MIMECSV, Decode: decodeCSV, Encode: encodeCSV})
	RegisterFormat(Format{Key: "excel", Label: "Excel", Ext: ".xlsx", MIME: MIMEExcel, Decode: decodeXLSX, Encode: encodeXLSX})
}

// RegisterFormat adds a format to the registry.
// Panics if the key or extension is already registered.
func RegisterFormat(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()

	if _, exists := formats[f.Key]; exists {
		panic(fmt.Sprintf("format already registered: %s", f.Key))
	}
	for _, other := range formats {
		if other.Ext == f.Ext {
			panic(fmt.Sprintf("extension already registered: %s", f.Ext))
		}
	}
	formats[f.Key] = f
}

// FormatByExt returns the format for a file extension such as ".csv".
// The match is case-sensitive.
func FormatByExt(ext string) (Format, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	for _, f := range formats {
		if f.Ext == ext {
			return f, true
		}
	}
	return Format{}, false
}

// FormatByKey resolves a user-supplied format choice.
// Accepts the key or the label in any case ("csv", "CSV", "Excel").
func FormatByKey(key string) (Format, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	key = strings.TrimSpace(key)
	for _, f := range formats {
		if strings.EqualFold(f.Key, key) || strings.EqualFold(f.Label, key) {
			return f, true
		}
	}
	return Format{}, false
}

// Formats returns all registered formats sorted by key.
func Formats() []Format {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	result := make([]Format, 0, len(formats))
	for _, f := range formats {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// SupportedExtensions returns the registered extensions in key order.
func SupportedExtensions() []string {
	fs := Formats()
	exts := make([]string, len(fs))
	for i, f := range fs {
		exts[i] = f.Ext
	}
	return exts
}
