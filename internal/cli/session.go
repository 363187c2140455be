package cli

import (
	"io"

	"github.com/mesh-intelligence/xgrid/internal/store"
	"github.com/mesh-intelligence/xgrid/pkg/grid"
	"github.com/mesh-intelligence/xgrid/pkg/types"
)

// session is an attached store with the stored grid loaded into the model.
type session struct {
	*env
	backend *store.Backend
	binding *store.Binding
	grid    *grid.Grid
}

// openSession loads the environment, attaches the store and builds the
// grid. configure may set collaborators on the grid options before
// construction. The caller must defer s.detach().
func openSession(logOut io.Writer, configure func(*grid.Options)) (*session, error) {
	e, err := loadEnv(logOut)
	if err != nil {
		return nil, err
	}
	return e.open(configure)
}

func (e *env) open(configure func(*grid.Options)) (*session, error) {
	backend := store.NewBackend(e.log)
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: e.dataDir}); err != nil {
		return nil, sysError("attach store: %w", err)
	}

	binding := backend.Bind(grid.StoreKey)
	opts := grid.Options{Size: e.size, Store: binding, Logger: e.log}
	if configure != nil {
		configure(&opts)
	}

	s := &session{env: e, backend: backend, binding: binding, grid: grid.New(opts)}
	if err := binding.Err(); err != nil {
		s.detach()
		return nil, sysError("load grid: %w", err)
	}
	return s, nil
}

// commit reports a persistence failure seen since the session opened.
func (s *session) commit() error {
	if err := s.binding.Err(); err != nil {
		return sysError("save grid: %w", err)
	}
	return nil
}

func (s *session) detach() {
	if err := s.backend.Detach(); err != nil {
		s.log.WithError(err).Warn("detach store")
	}
}
