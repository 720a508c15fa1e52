// Package prompts holds the LLM prompt templates as embedded JSON files.
// Each file maps a prompt key to its template text. Templates mark their
// fill-in slots as {{.Name}}, and Format substitutes plain string values
// for those slots without going through text/template.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFS embed.FS

var (
	parseMu sync.Mutex
	parsed  = map[string]map[string]string{}
)

// Get returns the template stored under key in the named embedded file.
func Get(filename, key string) (string, error) {
	table, err := table(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := table[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not defined in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return tmpl
}

// Format fills a template's {{.Name}} slots with the matching values from
// data. Slots with no matching entry are left in place, which keeps a
// missing value visible in the rendered prompt instead of silently blank.
func Format(tmpl string, data map[string]string) string {
	out := tmpl
	for name, value := range data {
		out = strings.ReplaceAll(out, "{{."+name+"}}", value)
	}
	return out
}

// List returns the prompt keys defined in the named file, sorted.
func List(filename string) ([]string, error) {
	table, err := table(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func table(filename string) (map[string]string, error) {
	parseMu.Lock()
	defer parseMu.Unlock()

	if t, ok := parsed[filename]; ok {
		return t, nil
	}
	raw, err := promptFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file %s: %w", filename, err)
	}
	var t map[string]string
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parsing prompt file %s: %w", filename, err)
	}
	parsed[filename] = t
	return t, nil
}
