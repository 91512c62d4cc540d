// Package corpus keeps falsifying inputs on disk so unsafe verdicts
// reproduce deterministically across runs. Entries are keyed by target
// name and signature, gzip-compressed, and expire after a TTL.
package corpus

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"safecheck/pkg/core"
)

const (
	defaultTTL = 30 * 24 * time.Hour
	maxInputs  = 32
)

type Corpus struct {
	Dir string
	TTL time.Duration
}

func New(dir string, ttl time.Duration) (*Corpus, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".safecheck", "corpus")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Corpus{Dir: dir, TTL: ttl}, nil
}

type entry struct {
	Target    string    `json:"target"`
	Signature string    `json:"signature"`
	Inputs    []any     `json:"inputs"`
	UpdatedAt time.Time `json:"updated_at"`
}

func key(target string, sig core.Signature) string {
	parts := []string{target, sig.Input.Name, string(sig.Input.Kind), sig.Output.Name, string(sig.Output.Kind)}
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

func (c *Corpus) path(k string) string {
	return filepath.Join(c.Dir, k+".json.gz")
}

// Get returns the stored falsifying inputs for a target, oldest first.
func (c *Corpus) Get(target string, sig core.Signature) ([]any, bool) {
	e, ok := c.load(target, sig)
	if !ok || len(e.Inputs) == 0 {
		return nil, false
	}
	return e.Inputs, true
}

// Put records a falsifying input. Duplicates are dropped and only the
// most recent maxInputs entries are kept.
func (c *Corpus) Put(target string, sig core.Signature, input any) error {
	e, ok := c.load(target, sig)
	if !ok {
		e = entry{Target: target, Signature: sig.String()}
	}
	for _, existing := range e.Inputs {
		if reflect.DeepEqual(existing, input) {
			return nil
		}
	}
	e.Inputs = append(e.Inputs, input)
	if len(e.Inputs) > maxInputs {
		e.Inputs = e.Inputs[len(e.Inputs)-maxInputs:]
	}
	e.UpdatedAt = time.Now()
	return c.store(key(target, sig), e)
}

func (c *Corpus) load(target string, sig core.Signature) (entry, bool) {
	p := c.path(key(target, sig))
	f, err := os.Open(p)
	if err != nil {
		return entry{}, false
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return entry{}, false
	}
	defer gz.Close()
	var e entry
	if err := json.NewDecoder(gz).Decode(&e); err != nil {
		return entry{}, false
	}
	if c.TTL > 0 && time.Since(e.UpdatedAt) > c.TTL {
		_ = os.Remove(p)
		return entry{}, false
	}
	return e, true
}

func (c *Corpus) store(k string, e entry) error {
	f, err := os.CreateTemp(c.Dir, "tmp-*.json.gz")
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(e); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), c.path(k)); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}
