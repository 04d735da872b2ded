// Package scene implements an interactive 2D diagram canvas: draggable,
// resizable entity rectangles connected by bezier links, with pan, zoom and
// pinch driven by a pointer-event state machine.
//
// The scene owns all of its mutable state (entities, connections, view
// transform, active gesture) and mutates it only from its own handlers;
// hosts feed it pointer and wheel events and call Draw after programmatic
// mutations. Connections reference entities by id, never by pointer, and
// every lookup tolerates a miss: removing an entity leaves its connections
// in place, and a dangling endpoint renders anchored at the world origin.
package scene

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"charterm/pkg/geom"
	"charterm/pkg/render"
)

// ErrNoSurface is returned by New when no drawing surface is supplied.
// Failure to acquire a surface is fatal: there is no degraded scene.
var ErrNoSurface = errors.New("scene: drawing surface is required")

// Endpoint names one side of a connection: a whole entity, or one specific
// entry row when EntryID is set. It is a weak reference by key; the rect it
// names may not exist yet or may have been removed.
type Endpoint struct {
	RectID  string
	EntryID string
}

// Connection is an unordered pair of endpoints. Which side is drawn as the
// outgoing one is a rendering choice, not a data property.
type Connection struct {
	ID string
	A  Endpoint
	B  Endpoint
}

// Scene is the diagram canvas. It is not safe for concurrent use: all
// mutation is expected to happen synchronously inside the host's event loop.
type Scene struct {
	surface render.Surface
	logger  *log.Logger
	rng     *rand.Rand
	palette Palette

	entities map[string]*Entity
	order    []string // stable draw order (insertion order)

	conns     map[string]*Connection
	connOrder []string

	view     geom.Transform
	pointers map[int]geom.Screen
	gesture  gesture
	cursor   Cursor
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for gesture diagnostics. By default the
// scene logs nothing.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand sets the randomness source used for entity placement, letting
// tests make placement deterministic.
func WithRand(r *rand.Rand) Option {
	return func(s *Scene) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithPalette sets the scene colors.
func WithPalette(p Palette) Option {
	return func(s *Scene) { s.palette = p }
}

// New creates a scene rendering onto surface. A nil surface is an error.
func New(surface render.Surface, opts ...Option) (*Scene, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	s := &Scene{
		surface:  surface,
		logger:   log.New(io.Discard),
		rng:      rand.New(rand.NewSource(rand.Int63())),
		palette:  DarkPalette(),
		entities: make(map[string]*Entity),
		conns:    make(map[string]*Connection),
		view:     geom.Identity(),
		pointers: make(map[int]geom.Screen),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// View returns the current view transform.
func (s *Scene) View() geom.Transform {
	return s.view
}

// Cursor returns the pointer-shape hint for the host to display.
func (s *Scene) Cursor() Cursor {
	return s.cursor
}

// AddEntity places a new entity at a uniformly random position within the
// currently visible world rectangle, with the default size clamped to the
// minimum for the current scale, and returns the caller-supplied id. Adding
// an id that already exists replaces that entity's data payload in place,
// so redundant calls are safe.
func (s *Scene) AddEntity(data RectData) string {
	if e, ok := s.entities[data.ID]; ok {
		e.Data = data
		return data.ID
	}

	size := geom.Size{
		W: maxf(defaultEntityWidth, MinWidth(s.view.Scale)),
		H: maxf(defaultEntityHeight, MinHeight(len(data.Entries), s.view.Scale)),
	}

	sw, sh := s.surface.Bounds()
	origin := s.view.ToWorld(geom.Screen{})
	visW := sw / s.view.Scale
	visH := sh / s.view.Scale

	pos := geom.World{
		X: origin.X + s.rng.Float64()*maxf(visW-size.W, 0),
		Y: origin.Y + s.rng.Float64()*maxf(visH-size.H, 0),
	}

	s.entities[data.ID] = &Entity{Pos: pos, Size: size, Data: data}
	s.order = append(s.order, data.ID)
	s.logger.Debug("entity added", "id", data.ID, "x", pos.X, "y", pos.Y)
	return data.ID
}

// RemoveEntity removes the entity with the given id, reporting whether it
// existed. Connections referencing the id are left in place and render via
// the dangling fallback until the caller removes them.
func (s *Scene) RemoveEntity(id string) bool {
	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.gesture.entity != nil && s.gesture.entity.Data.ID == id {
		s.gesture = gesture{}
	}
	s.logger.Debug("entity removed", "id", id)
	return true
}

// UpdateEntity replaces the entity's data payload wholesale, leaving its
// geometry untouched. It reports whether the id exists.
func (s *Scene) UpdateEntity(id string, data RectData) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	data.ID = id
	e.Data = data
	return true
}

// Entity returns a copy of the entity with the given id.
func (s *Scene) Entity(id string) (Entity, bool) {
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// EntityIDs returns all entity ids in draw order.
func (s *Scene) EntityIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// EntityAt hit-tests the topmost entity at the given screen point and
// returns a copy of it.
func (s *Scene) EntityAt(p geom.Screen) (Entity, bool) {
	e, _ := s.hitTest(s.view.ToWorld(p))
	if e == nil {
		return Entity{}, false
	}
	return *e, true
}

// AddConnection links two endpoints and returns the generated connection
// id. Endpoints are not validated: ids may name entities that do not exist
// yet or that have been removed.
func (s *Scene) AddConnection(a, b Endpoint) string {
	id := uuid.NewString()
	s.conns[id] = &Connection{ID: id, A: a, B: b}
	s.connOrder = append(s.connOrder, id)
	return id
}

// RemoveConnection removes a connection, reporting whether it existed.
func (s *Scene) RemoveConnection(id string) bool {
	if _, ok := s.conns[id]; !ok {
		return false
	}
	delete(s.conns, id)
	for i, v := range s.connOrder {
		if v == id {
			s.connOrder = append(s.connOrder[:i], s.connOrder[i+1:]...)
			break
		}
	}
	return true
}

// Connections returns all connections in creation order.
func (s *Scene) Connections() []Connection {
	out := make([]Connection, 0, len(s.connOrder))
	for _, id := range s.connOrder {
		out = append(out, *s.conns[id])
	}
	return out
}

// ConnectionsFor returns the connections touching the given rect id on
// either side, regardless of entry.
func (s *Scene) ConnectionsFor(rectID string) []Connection {
	var out []Connection
	for _, id := range s.connOrder {
		c := s.conns[id]
		if c.A.RectID == rectID || c.B.RectID == rectID {
			out = append(out, *c)
		}
	}
	return out
}

// hitTest classifies the world point against entities topmost-first and
// returns the first hit. The edge threshold is kept constant on screen by
// dividing the pixel threshold by the current scale.
func (s *Scene) hitTest(p geom.World) (*Entity, Part) {
	t := edgeThreshold / s.view.Scale
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.entities[s.order[i]]
		if part := e.ClassifyPoint(p, t); part != PartNone {
			return e, part
		}
	}
	return nil, PartNone
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
