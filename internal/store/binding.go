package store

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/xgrid/pkg/types"
)

// Binding exposes one slot of a Backend as a load/save port. It implements
// grid.Store: failures are logged and remembered instead of returned, and
// the caller inspects Err once it is done.
type Binding struct {
	backend *Backend
	key     string

	mu  sync.Mutex
	err error
}

// Bind returns a Binding for key.
func (b *Backend) Bind(key string) *Binding {
	return &Binding{backend: b, key: key}
}

// Load returns the stored value, or false when the slot is empty or cannot
// be read.
func (p *Binding) Load() (string, bool) {
	s, err := p.backend.Get(p.key)
	if errors.Is(err, types.ErrNotFound) {
		return "", false
	}
	if err != nil {
		p.fail("load", err)
		return "", false
	}
	return s.Data, true
}

// Save writes data to the slot.
func (p *Binding) Save(data string) {
	if _, err := p.backend.Set(p.key, data); err != nil {
		p.fail("save", err)
	}
}

// Err returns the first failure seen by Load or Save, if any.
func (p *Binding) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Binding) fail(op string, err error) {
	p.backend.log.WithError(err).WithFields(logrus.Fields{"key": p.key, "op": op}).Warn("persistence failed")

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}
