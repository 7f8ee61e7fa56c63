// Package topics implements the Topic Manager: a small JSON-persisted
// {topic: bool} state, loaded once and written on every change. Writes are
// atomic (temp file + rename) so a crash mid-write never corrupts the file.
package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DefaultTopics seeds a fresh state file when none exists yet.
var DefaultTopics = map[string]bool{
	"Christianity": true,
	"World News":   true,
	"Technology":   false,
	"Business":     false,
	"Sports":       false,
}

// Manager guards the in-memory topic map and its on-disk mirror. Readers are
// lock-free over a snapshot map swapped under RLock; writers hold the
// exclusive lock for the duration of the file write.
type Manager struct {
	mu   sync.RWMutex
	path string
	data map[string]bool
}

// Load reads path, seeding it with DefaultTopics if the file does not yet
// exist. A malformed existing file is treated as a fatal config error: the
// caller chose this path, so silently discarding its contents would be
// surprising.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		m.data = cloneMap(DefaultTopics)
		if err := m.persist(); err != nil {
			return nil, fmt.Errorf("seed topic state: %w", err)
		}
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read topic state: %w", err)
	}
	var data map[string]bool
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse topic state %s: %w", path, err)
	}
	m.data = data
	return m, nil
}

// GetAll returns a snapshot copy of the current topic map.
func (m *Manager) GetAll() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneMap(m.data)
}

// SetTopic toggles a single topic and persists the change atomically.
func (m *Manager) SetTopic(name string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = active
	return m.persist()
}

// ActiveKeywords returns the names of all currently-active topics, sorted for
// deterministic output.
func (m *Manager) ActiveKeywords() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for name, active := range m.data {
		if active {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ActiveTopicQuery builds the OR-joined, quoted query fragment the
// orchestrator appends when constraining a search to active topics. Returns
// "" if no topic is active.
func (m *Manager) ActiveTopicQuery() string {
	active := m.ActiveKeywords()
	if len(active) == 0 {
		return ""
	}
	quoted := make([]string, len(active))
	for i, name := range active {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, " OR ")
}

// persist writes m.data to a temp file in the same directory as m.path, then
// renames it into place. The rename is atomic on the same filesystem, so a
// reader never observes a partially-written file.
func (m *Manager) persist() error {
	raw, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic state: %w", err)
	}
	dir := filepath.Dir(m.path)
	tmp, err := os.CreateTemp(dir, ".topics-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp topic state: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp topic state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp topic state: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp topic state: %w", err)
	}
	return nil
}

func cloneMap(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
