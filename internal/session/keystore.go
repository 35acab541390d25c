package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go-blog-client/internal/model"
)

// Keystore is the durable storage behind the session store. All four session
// fields are written together and cleared together; there is no per-field
// update path.
type Keystore interface {
	Load() (model.Session, error)
	Save(model.Session) error
	Clear() error
}

// FileKeystore persists the session as a JSON file, the CLI counterpart of
// the browser's localStorage keys.
type FileKeystore struct {
	path string
}

func NewFileKeystore(path string) *FileKeystore {
	return &FileKeystore{path: path}
}

func (k *FileKeystore) Load() (model.Session, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Session{}, nil
		}
		return model.Session{}, err
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is the same as no session.
		return model.Session{}, nil
	}

	return sess, nil
}

func (k *FileKeystore) Save(sess model.Session) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(k.path, data, 0o600)
}

func (k *FileKeystore) Clear() error {
	err := os.Remove(k.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// MemoryKeystore keeps the session in memory only. Used by tests and by
// library consumers that do not want credentials on disk.
type MemoryKeystore struct {
	mu   sync.Mutex
	sess model.Session
	set  bool
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{}
}

func (k *MemoryKeystore) Load() (model.Session, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.set {
		return model.Session{}, nil
	}

	return k.sess, nil
}

func (k *MemoryKeystore) Save(sess model.Session) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.sess = sess
	k.set = true

	return nil
}

func (k *MemoryKeystore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.sess = model.Session{}
	k.set = false

	return nil
}
