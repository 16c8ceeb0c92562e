package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type State int

const (
	Empty State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadFunc produces the slot value.
type LoadFunc[T any] func(ctx context.Context) (*T, error)

// Slot memoizes a single value for the life of the process. Concurrent
// first callers share one in-flight load. A failed load is kept until the
// next Get, which starts a fresh load.
type Slot[T any] struct {
	name  string
	mu    sync.RWMutex
	state State
	value *T
	err   error
	group singleflight.Group
}

func NewSlot[T any](name string) *Slot[T] {
	return &Slot[T]{name: name}
}

// Get returns the cached value or runs load to fill the slot. A caller whose
// ctx ends stops waiting, but the shared load keeps running for the others.
func (s *Slot[T]) Get(ctx context.Context, load LoadFunc[T]) (*T, error) {
	logger := zerolog.Ctx(ctx)

	if v, ok := s.Peek(); ok {
		logger.Debug().Str("slot", s.name).Msg("cache hit")
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	resultChan := s.group.DoChan(s.name, func() (val interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("loading %s panicked: %v", s.name, r)
				s.set(Failed, nil, err)
			}
		}()
		if v, ok := s.Peek(); ok {
			return v, nil
		}
		s.set(Loading, nil, nil)

		v, err := load(loadCtx)
		if err != nil {
			s.set(Failed, nil, err)
			return nil, err
		}
		s.set(Ready, v, nil)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug().Str("slot", s.name).Msg("joined in-flight load")
		}
		return res.Val.(*T), nil
	}
}

// Peek returns the value if the slot is ready, without loading.
func (s *Slot[T]) Peek() (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.state == Ready
}

func (s *Slot[T]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err is the error of the last failed load, if the slot is in Failed state.
func (s *Slot[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Slot[T]) set(state State, value *T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.value = value
	s.err = err
}
