package interaction

import (
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
)

// Socket is a binding point that holds at most one tagged occupant.
// Occupancy changes only through Insert and Remove; observers registered
// with OnChanged hear about every change, in registration order.
type Socket struct {
	behaviour.BaseComponent
	occupied bool
	occupant *behaviour.GameObject

	observers []socketObserver
	nextID    int
	log       *zap.Logger
}

type socketObserver struct {
	id int
	fn func(*Socket)
}

func NewSocket(log *zap.Logger) *Socket {
	return &Socket{log: logger.Or(log)}
}

func (s *Socket) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeSocket
}

func (s *Socket) GetTypeName() string {
	return "Socket"
}

// Insert places an occupant into the socket. A socket already holding an
// occupant keeps it: single occupancy is the contract, so the second insert
// is refused with ErrOccupied.
func (s *Socket) Insert(occupant *behaviour.GameObject) error {
	if occupant == nil {
		return ErrNilOccupant
	}
	if s.occupied {
		s.log.Debug("Insert refused, socket occupied",
			zap.String("socket", s.name()),
			zap.String("occupant", occupant.Name))
		return ErrOccupied
	}
	s.occupied = true
	s.occupant = occupant
	s.log.Info("Occupant inserted",
		zap.String("socket", s.name()),
		zap.String("occupant", occupant.Name),
		zap.String("label", occupant.Tag))
	s.notify()
	return nil
}

// Remove empties the socket and returns the previous occupant. Removing from
// an empty socket is a quiet no-op.
func (s *Socket) Remove() (*behaviour.GameObject, bool) {
	if !s.occupied {
		s.log.Debug("Remove ignored, socket empty", zap.String("socket", s.name()))
		return nil, false
	}
	occupant := s.occupant
	s.occupied = false
	s.occupant = nil
	name := "<nil>"
	if occupant != nil {
		name = occupant.Name
	}
	s.log.Info("Occupant removed",
		zap.String("socket", s.name()),
		zap.String("occupant", name))
	s.notify()
	return occupant, occupant != nil
}

// Occupant returns the current occupant. The bool reports the occupancy
// flag, so an occupied socket with a vanished occupant returns (nil, true).
func (s *Socket) Occupant() (*behaviour.GameObject, bool) {
	return s.occupant, s.occupied
}

func (s *Socket) IsOccupied() bool {
	return s.occupied
}

// Label returns the occupant's tag, or "" when the socket is empty.
func (s *Socket) Label() string {
	if s.occupant == nil {
		return ""
	}
	return s.occupant.Tag
}

// OnChanged registers an observer fired after every occupancy change. The
// returned func deregisters it; calling it twice is harmless.
func (s *Socket) OnChanged(fn func(*Socket)) func() {
	if fn == nil {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, socketObserver{id: id, fn: fn})
	return func() {
		for i, obs := range s.observers {
			if obs.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Socket) OnDestroy() {
	s.observers = nil
}

func (s *Socket) notify() {
	// Snapshot so an observer deregistering mid-delivery cannot skip others.
	snapshot := make([]socketObserver, len(s.observers))
	copy(snapshot, s.observers)
	for _, obs := range snapshot {
		obs.fn(s)
	}
}

func (s *Socket) name() string {
	if obj := s.GetGameObject(); obj != nil {
		return obj.Name
	}
	return "<detached>"
}
