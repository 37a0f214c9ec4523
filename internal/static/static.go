package static

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/geocoder89/coursehub/internal/cache"
)

// SyllabusEntry is one row of the syllabus page.
type SyllabusEntry struct {
	Week    int    `json:"week"`
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// QA is one question/answer pair on the Q&A page.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Loader reads the static page JSON from the data dir. Unreadable or
// malformed files degrade to empty pages; the portal never 500s over a
// broken syllabus file.
type Loader struct {
	dir   string
	cache *cache.Cache
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: cache.New(30 * time.Second),
	}
}

func (l *Loader) Syllabus() []SyllabusEntry {
	if v, ok := l.cache.Get("syllabus"); ok {
		if entries, ok := v.([]SyllabusEntry); ok {
			return entries
		}
	}

	entries := []SyllabusEntry{}
	readJSON(filepath.Join(l.dir, "syllabus.json"), &entries)

	l.cache.Set("syllabus", entries)

	return entries
}

func (l *Loader) QAs() []QA {
	if v, ok := l.cache.Get("qas"); ok {
		if qas, ok := v.([]QA); ok {
			return qas
		}
	}

	qas := []QA{}
	readJSON(filepath.Join(l.dir, "qas.json"), &qas)

	l.cache.Set("qas", qas)

	return qas
}

// readJSON leaves out untouched on any failure.
func readJSON(path string, out any) {
	raw, err := os.ReadFile(path)

	if err != nil {
		return
	}

	_ = json.Unmarshal(raw, out)
}
