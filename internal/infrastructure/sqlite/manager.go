package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Estados del ciclo de vida del almacén.
const (
	StateUnopened = "unopened"
	StateOpening  = "opening"
	StateReady    = "ready"
	StateFailed   = "failed"
	StateClosed   = "closed"
)

const (
	eventOpen     = "open"
	eventOpenDone = "open_done"
	eventOpenFail = "open_fail"
	eventClose    = "close"
)

// ErrClosed el Manager ya fue cerrado.
var ErrClosed = errors.New("almacén cerrado")

// Manager controla la apertura perezosa y única del Store.
// Llamadas concurrentes a Open comparten una sola apertura y observan el mismo resultado.
type Manager struct {
	opts  Options
	log   zerolog.Logger
	group singleflight.Group

	mu    sync.Mutex
	fsm   *fsm.FSM
	store *Store
	err   error
}

// NewManager construye el Manager en estado unopened.
func NewManager(opts Options) *Manager {
	m := &Manager{opts: opts, log: opts.Logger}
	m.fsm = fsm.NewFSM(
		StateUnopened,
		fsm.Events{
			{Name: eventOpen, Src: []string{StateUnopened}, Dst: StateOpening},
			{Name: eventOpenDone, Src: []string{StateOpening}, Dst: StateReady},
			{Name: eventOpenFail, Src: []string{StateOpening}, Dst: StateFailed},
			{Name: eventClose, Src: []string{StateReady}, Dst: StateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.log.Debug().Str("from", e.Src).Str("to", e.Dst).Msg("estado del almacén")
			},
		},
	)
	return m
}

// State estado actual.
func (m *Manager) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fsm.Current()
}

// Open abre el almacén (una sola vez) y devuelve el handle compartido.
// ctx solo acota la apertura; las transiciones de estado no dependen de él, así
// que una cancelación deja el Manager en failed con el error registrado.
func (m *Manager) Open(ctx context.Context) (*Store, error) {
	if s, err, done := m.settled(); done {
		return s, err
	}
	v, err, _ := m.group.Do("open", func() (any, error) {
		if s, err, done := m.settled(); done {
			return s, err
		}
		if err := m.transition(eventOpen); err != nil {
			return nil, err
		}

		s, err := Open(ctx, m.opts)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			m.err = err
			m.fire(eventOpenFail)
			m.log.Error().Err(err).Msg("no se pudo abrir el almacén")
			return nil, err
		}
		m.store = s
		m.fire(eventOpenDone)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// settled devuelve el resultado si el Manager ya no está en unopened.
func (m *Manager) settled() (*Store, error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.fsm.Current() {
	case StateReady:
		return m.store, nil, true
	case StateFailed:
		return nil, m.err, true
	case StateClosed:
		return nil, ErrClosed, true
	}
	return nil, nil, false
}

func (m *Manager) transition(event string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("transición %s desde %s: %w", event, m.fsm.Current(), err)
	}
	return nil
}

// fire dispara event con m.mu tomado. Los eventos internos siempre son válidos
// desde el estado actual; un error indica un bug y se registra.
func (m *Manager) fire(event string) {
	if err := m.fsm.Event(context.Background(), event); err != nil {
		m.log.Error().Err(err).Str("event", event).Str("state", m.fsm.Current()).Msg("transición rechazada")
	}
}

// Close cierra el almacén si está abierto. Cerrar un Manager que nunca abrió no hace nada.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fsm.Current() != StateReady {
		return nil
	}
	err := m.store.Close()
	m.fire(eventClose)
	m.store = nil
	return err
}
