package chart

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

const defaultMemoLimit = 16

// Memo caches encodings by a fingerprint of their input. Concurrent calls
// for the same fingerprint share a single Encode.
type Memo struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[string]Encoding
	order   []string
	limit   int

	hits   int
	misses int
}

func NewMemo(limit int) *Memo {
	if limit <= 0 {
		limit = defaultMemoLimit
	}
	return &Memo{
		entries: make(map[string]Encoding, limit),
		limit:   limit,
	}
}

// Encode returns the cached encoding for in, computing it on first use.
func (m *Memo) Encode(in Input) Encoding {
	key := Fingerprint(in)

	m.mu.Lock()
	if enc, ok := m.entries[key]; ok {
		m.hits++
		m.mu.Unlock()
		return enc
	}
	m.mu.Unlock()

	v, _, _ := m.group.Do(key, func() (any, error) {
		enc := Encode(in)
		m.store(key, enc)
		return enc, nil
	})
	return v.(Encoding)
}

func (m *Memo) store(key string, enc Encoding) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	if _, ok := m.entries[key]; ok {
		return
	}
	if len(m.order) >= m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = enc
	m.order = append(m.order, key)
}

// Stats reports cache hits and computed misses.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Fingerprint returns a stable hash of everything Encode reads from in.
func Fingerprint(in Input) string {
	var sb strings.Builder

	sb.WriteString(core.DateKey(core.StartOfDay(in.Today)))
	sb.WriteString("|")
	sb.WriteString(strconv.Itoa(in.Days))
	sb.WriteString("|")
	writeFloats(&sb, in.Frame.Width, in.Frame.Height, in.Frame.Padding.Top, in.Frame.Padding.Bottom)

	for _, spec := range in.Metrics {
		sb.WriteString("|m:")
		sb.WriteString(string(spec.Name))
		sb.WriteString(":")
		sb.WriteString(spec.Label)
		sb.WriteString(":")
		writeFloats(&sb, spec.Family.Hue, spec.Family.Saturation)
	}

	keys := lo.Keys(in.Samples)
	sort.Strings(keys)
	for _, k := range keys {
		sample := in.Samples[k]
		sb.WriteString("|d:")
		sb.WriteString(k)
		for _, metric := range sample.Metrics() {
			sb.WriteString(";")
			sb.WriteString(string(metric))
			sb.WriteString("=")
			writeFloats(&sb, sample.Ratings[metric])
		}
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

func writeFloats(sb *strings.Builder, vals ...float64) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}
