package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

// Digest identifies cached content by its SHA-256.
type Digest = [32]byte

// Current schema version - increment when SeqPayload format changes
const seqCacheSchemaVersion uint16 = 1

// SeqCache хранит скомпилированные постфиксные последовательности на диске,
// ключ — SHA-256 содержимого исходника. Thread-safe for concurrent access.
type SeqCache struct {
	mu  sync.RWMutex
	dir string
}

// SeqPayload is the serialized form of one parsed sequence. Spans are stored
// as raw offsets; FileID is reassigned on load because it only has meaning
// inside one FileSet.
type SeqPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Ops    []uint8
	Starts []uint32
	Ends   []uint32
	// Texts aligned with Ops; empty for operator entries
	Texts []string
}

// OpenSeqCache initializes and returns a disk cache at the standard location.
func OpenSeqCache(app string) (*SeqCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SeqCache{dir: dir}, nil
}

// OpenSeqCacheAt opens a cache rooted at an explicit directory (config
// override, tests).
func OpenSeqCacheAt(dir string) (*SeqCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SeqCache{dir: dir}, nil
}

func (c *SeqCache) pathFor(key Digest) string {
	hexKey := fmt.Sprintf("%x", key)
	// подкаталог "seqs" для удобства очистки
	return filepath.Join(c.dir, "seqs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *SeqCache) Put(key Digest, payload *SeqPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *SeqCache) Get(key Digest, out *SeqPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *SeqCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// seqToPayload converts a parsed sequence to its cacheable form.
func seqToPayload(seq rpn.Sequence) *SeqPayload {
	payload := &SeqPayload{
		Schema: seqCacheSchemaVersion,
		Ops:    make([]uint8, len(seq)),
		Starts: make([]uint32, len(seq)),
		Ends:   make([]uint32, len(seq)),
		Texts:  make([]string, len(seq)),
	}
	for i, tok := range seq {
		payload.Ops[i] = uint8(tok.Kind)
		payload.Starts[i] = tok.Span.Start
		payload.Ends[i] = tok.Span.End
		payload.Texts[i] = tok.Text
	}
	return payload
}

// payloadToSeq restores a sequence, rebinding spans to fileID. A nil result
// means the payload is from another schema or structurally broken.
func payloadToSeq(payload *SeqPayload, fileID source.FileID) rpn.Sequence {
	if payload == nil || payload.Schema != seqCacheSchemaVersion {
		return nil
	}
	n := len(payload.Ops)
	if len(payload.Starts) != n || len(payload.Ends) != n || len(payload.Texts) != n {
		return nil
	}

	seq := make(rpn.Sequence, n)
	for i := range payload.Ops {
		seq[i] = rpn.Token{
			Kind: rpn.Kind(payload.Ops[i]),
			Span: source.Span{File: fileID, Start: payload.Starts[i], End: payload.Ends[i]},
			Text: payload.Texts[i],
		}
	}
	if seq.Wellformed() != nil {
		return nil
	}
	return seq
}

func cacheLookup(cache *SeqCache, file *source.File) (rpn.Sequence, bool) {
	var payload SeqPayload
	ok, err := cache.Get(file.Hash, &payload)
	if err != nil || !ok {
		return nil, false
	}
	seq := payloadToSeq(&payload, file.ID)
	return seq, seq != nil
}

func cacheStore(cache *SeqCache, file *source.File, seq rpn.Sequence) error {
	return cache.Put(file.Hash, seqToPayload(seq))
}
