// Package versioning maps corpus editions to source folders and site paths.
package versioning

import (
	"path"
	"regexp"
	"strings"
)

// CurrentFolder marks the unversioned edition. Its documents live at the
// site root and are read from the corpus's general folder.
const CurrentFolder = "."

// GeneralFolder is the corpus folder read for the current edition.
const GeneralFolder = "general"

// Edition is a named version of the whole corpus.
type Edition struct {
	Name   string `json:"name" yaml:"name"`
	Folder string `json:"folder" yaml:"folder"`
}

// IsCurrent reports whether e is the unversioned edition.
func (e Edition) IsCurrent() bool { return e.Folder == CurrentFolder }

// SourceFolder is the corpus subfolder (below aep/) holding e's documents.
func (e Edition) SourceFolder() string {
	if e.IsCurrent() {
		return GeneralFolder
	}
	return e.Folder
}

// OutputPrefix is the site path prefix for e's documents, empty for the
// current edition.
func (e Edition) OutputPrefix() string {
	if e.IsCurrent() {
		return ""
	}
	return e.Folder
}

// Editions is an ordered editions configuration.
type Editions []Edition

// Current returns the edition with the current folder marker.
func (es Editions) Current() (Edition, bool) {
	for _, e := range es {
		if e.IsCurrent() {
			return e, true
		}
	}
	return Edition{}, false
}

func (es Editions) hasFolder(segment string) bool {
	for _, e := range es {
		if !e.IsCurrent() && e.Folder == segment {
			return true
		}
	}
	return false
}

func segments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FromPath resolves the edition a site path belongs to. A path containing a
// versioned edition's folder belongs to that edition. Otherwise it belongs to
// the current edition, if one is configured.
func (es Editions) FromPath(sitePath string) (Edition, bool) {
	segs := segments(sitePath)
	versioned := false
	for _, s := range segs {
		if es.hasFolder(s) {
			versioned = true
			break
		}
	}

	for _, e := range es {
		if e.IsCurrent() {
			if !versioned {
				return e, true
			}
			continue
		}
		for _, s := range segs {
			if s == e.Folder {
				return e, true
			}
		}
	}
	return es.Current()
}

// VersionedPath rewrites sitePath so it points at the same page in target.
func (es Editions) VersionedPath(sitePath string, target Edition) string {
	segs := segments(sitePath)
	if cur, ok := es.FromPath(sitePath); ok && !cur.IsCurrent() {
		for i, s := range segs {
			if s == cur.Folder {
				segs = append(segs[:i:i], segs[i+1:]...)
				break
			}
		}
	}
	if !target.IsCurrent() {
		segs = append([]string{target.Folder}, segs...)
	}
	return "/" + strings.Join(segs, "/")
}

var numericSegment = regexp.MustCompile(`^\d+$`)

// IsVersionedPage reports whether sitePath ends in a document id, meaning
// the page exists in every edition and an edition switcher applies.
func IsVersionedPage(sitePath string) bool {
	return numericSegment.MatchString(path.Base(strings.TrimRight(sitePath, "/")))
}
