package intake

import (
	"path"
	"regexp"
	"strings"

	"docushield-workers/internal/models"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

var systemNames = map[string]bool{
	"thumbs.db":   true,
	"desktop.ini": true,
	".ds_store":   true,
}

// Classify sorts a single filename into CURRENT, REFUSAL or SUPPORTING.
// It never fails: names without any keyword hit are SUPPORTING.
func Classify(filename string) models.FileCategory {
	category, _ := Match(filename)
	return category
}

// Match is Classify plus the name of the rule that fired ("" for the
// catch-all).
func Match(filename string) (models.FileCategory, string) {
	name := normalize(filename)
	for _, r := range Rules {
		if r.Pattern.MatchString(name) {
			return r.Category, r.Name
		}
	}
	return models.FileCategorySupporting, ""
}

func normalize(filename string) string {
	name := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSpace(separators.ReplaceAllString(name, " "))
}

// BaseName flattens an archive path to its last element.
func BaseName(entry string) string {
	entry = strings.ReplaceAll(entry, "\\", "/")
	entry = strings.TrimSuffix(entry, "/")
	if i := strings.LastIndex(entry, "/"); i >= 0 {
		return entry[i+1:]
	}
	return entry
}

// IsSystemEntry reports whether an archive entry must be skipped before
// classification: directories, hidden files, "__" prefixed names and OS
// metadata files.
func IsSystemEntry(entry string) bool {
	normalized := strings.ReplaceAll(entry, "\\", "/")
	if normalized == "" || strings.HasSuffix(normalized, "/") {
		return true
	}
	for _, seg := range strings.Split(normalized, "/") {
		if strings.HasPrefix(seg, "__") {
			return true
		}
	}
	base := BaseName(normalized)
	if base == "" || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "__") {
		return true
	}
	return systemNames[strings.ToLower(base)]
}

// ClassifyAll rebuilds the full classified set from a listing. Order inside
// each bucket follows the listing and duplicates are kept. It returns the
// number of entries that were classified.
func ClassifyAll(entries []string) (models.ClassifiedFileSet, int) {
	set := models.ClassifiedFileSet{
		Current:    []string{},
		Refusal:    []string{},
		Supporting: []string{},
	}
	scanned := 0
	for _, entry := range entries {
		if IsSystemEntry(entry) {
			continue
		}
		name := BaseName(entry)
		scanned++
		switch Classify(name) {
		case models.FileCategoryRefusal:
			set.Refusal = append(set.Refusal, name)
		case models.FileCategoryCurrent:
			set.Current = append(set.Current, name)
		default:
			set.Supporting = append(set.Supporting, name)
		}
	}
	return set, scanned
}
