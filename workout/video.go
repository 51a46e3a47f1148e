package workout

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	VIDEO_NAME = "Exercise"
	VIDEO_LINK = "VideoLink"
)

// VideoIndex maps an exercise name to a video reference.
type VideoIndex map[string]string

// MapVideoIndex builds the exercise -> video lookup from the lookup tab. Columns are located by name,
// rows with either cell empty are skipped and a repeated exercise name keeps the last link.
func MapVideoIndex(header []string, rows [][]string, nameColumn, linkColumn string) VideoIndex {
	index := VideoIndex{}

	name := -1
	link := -1
	for i, h := range header {
		switch normalise(h) {
		case normalise(nameColumn):
			name = i
		case normalise(linkColumn):
			link = i
		}
	}

	if name < 0 || link < 0 {
		return index
	}

	for _, row := range rows {
		if name >= len(row) || link >= len(row) {
			continue
		}

		k := clean(row[name])
		v := clean(row[link])
		if k == "" || v == "" {
			continue
		}

		index[k] = v
	}

	return index
}

func (x VideoIndex) Lookup(exercise string) (string, bool) {
	v, ok := x[clean(exercise)]

	return v, ok
}

// Search returns the exercise names matching the query, best match first. A blank query returns every
// exercise in alphabetical order.
func (x VideoIndex) Search(query string) []string {
	names := make([]string, 0, len(x))
	for k := range x {
		names = append(names, k)
	}

	sort.Strings(names)

	if strings.TrimSpace(query) == "" {
		return names
	}

	matches := fuzzy.Find(query, names)
	list := make([]string, len(matches))
	for i, m := range matches {
		list[i] = names[m.Index]
	}

	return list
}
