package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDocumentID = "aep_id"
	KeyFolder     = "folder"
	KeyEdition    = "edition"
	KeyPath       = "path"
	KeySource     = "source"
	KeyComponent  = "component"
	KeyCount      = "count"
	KeyBytes      = "bytes"
	KeyURL        = "url"
	KeyAddr       = "addr"
	KeyOp         = "op"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DocumentID(id string) slog.Attr  { return slog.String(KeyDocumentID, id) }
func Folder(f string) slog.Attr       { return slog.String(KeyFolder, f) }
func Edition(name string) slog.Attr   { return slog.String(KeyEdition, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
