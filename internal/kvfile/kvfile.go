// Package kvfile writes and reads the small INI-like config files consumed
// by the broker SDK: section headers followed by "key = value" lines, with
// no blank lines, key case kept as given and input order preserved.
package kvfile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-ini/ini"
)

type Section struct {
	Name    string
	Entries []Entry
}

type Entry struct {
	Key   string
	Value string
}

// Get returns the value of key within the section and whether it was found.
func (s Section) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

var loadOptions = ini.LoadOptions{
	// Certificate passwords and secrets may contain '#' or ';'.
	IgnoreInlineComment: true,
}

// Write serializes sections to path, replacing the file.
func Write(path string, sections []Section) error {
	f := ini.Empty(loadOptions)
	for _, s := range sections {
		sec, err := f.NewSection(s.Name)
		if err != nil {
			return fmt.Errorf("new section %q: %w", s.Name, err)
		}
		for _, e := range s.Entries {
			if _, err := sec.NewKey(e.Key, e.Value); err != nil {
				return fmt.Errorf("new key %q in section %q: %w", e.Key, s.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := writeUnpadded(f, &buf); err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	if err := os.WriteFile(path, stripBlankLines(buf.Bytes()), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var prettyMu sync.Mutex

// writeUnpadded writes "key = value" lines without padding keys to a common
// width. go-ini only has package-level format settings, so they are swapped
// in for the write and restored afterwards.
func writeUnpadded(f *ini.File, buf *bytes.Buffer) error {
	prettyMu.Lock()
	defer prettyMu.Unlock()

	format, equal := ini.PrettyFormat, ini.PrettyEqual
	ini.PrettyFormat, ini.PrettyEqual = false, true
	defer func() { ini.PrettyFormat, ini.PrettyEqual = format, equal }()

	_, err := f.WriteTo(buf)
	return err
}

// Read parses the file at path back into ordered sections.
func Read(path string) ([]Section, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var result []Section
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}

		s := Section{Name: sec.Name(), Entries: make([]Entry, 0, len(keys))}
		for _, k := range keys {
			s.Entries = append(s.Entries, Entry{Key: k.Name(), Value: k.Value()})
		}
		result = append(result, s)
	}
	return result, nil
}

func stripBlankLines(b []byte) []byte {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}
