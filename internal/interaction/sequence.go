package interaction

import (
	"fmt"

	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/signal"
)

// SequenceChecker watches an ordered set of sockets and decides whether every
// socket holds an occupant with the expected label, in order. The verdict is
// published on the signal hub after every insertion or removal on a watched
// socket, never on a timer.
type SequenceChecker struct {
	behaviour.BaseComponent
	sockets []*Socket
	want    []string
	hub     *signal.Hub
	log     *zap.Logger

	misconfigured bool
	teardowns     []func()
}

// NewSequenceChecker builds a checker over parallel socket and label lists.
// A length mismatch, an empty sequence or a nil socket is a configuration
// error: it is returned to the caller, and the checker comes back inert so a
// host that ignores the error still gets fail-safe behavior (Evaluate always
// false, no signals). hub may be nil for direct-call use.
func NewSequenceChecker(hub *signal.Hub, sockets []*Socket, want []string, log *zap.Logger) (*SequenceChecker, error) {
	c := &SequenceChecker{
		sockets: sockets,
		want:    want,
		hub:     hub,
		log:     logger.Or(log),
	}

	var err error
	switch {
	case len(sockets) != len(want):
		err = fmt.Errorf("%w: %d sockets, %d labels", ErrSequenceMismatch, len(sockets), len(want))
	case len(sockets) == 0:
		err = ErrNoEntries
	default:
		for i, s := range sockets {
			if s == nil {
				err = fmt.Errorf("%w: index %d", ErrNilSocket, i)
				break
			}
		}
	}
	if err != nil {
		c.misconfigured = true
		c.log.Error("Sequence checker misconfigured, disabling", zap.Error(err))
		return c, err
	}
	return c, nil
}

func (c *SequenceChecker) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeSequence
}

func (c *SequenceChecker) GetTypeName() string {
	return "SequenceChecker"
}

// Start registers the checker as an observer on every watched socket.
// A misconfigured checker subscribes to nothing: further events are ignored.
func (c *SequenceChecker) Start() {
	if c.misconfigured {
		return
	}
	for _, s := range c.sockets {
		c.teardowns = append(c.teardowns, s.OnChanged(func(*Socket) {
			c.Check()
		}))
	}
}

// OnDestroy deregisters every socket observer.
func (c *SequenceChecker) OnDestroy() {
	for _, teardown := range c.teardowns {
		teardown()
	}
	c.teardowns = nil
}

// Evaluate walks the sockets in index order and short-circuits on the first
// empty socket or label mismatch. An occupied socket whose occupant reference
// is gone counts as a mismatch, not a crash.
func (c *SequenceChecker) Evaluate() bool {
	if c.misconfigured {
		return false
	}
	for i, s := range c.sockets {
		occupant, occupied := s.Occupant()
		if !occupied || occupant == nil {
			return false
		}
		if !occupant.HasTag(c.want[i]) {
			return false
		}
	}
	return true
}

// Check evaluates the sequence and publishes the verdict. Signals fire on
// every call, even when the verdict has not changed since the last one:
// consumers stay idempotent, the checker does not de-duplicate.
func (c *SequenceChecker) Check() bool {
	if c.misconfigured {
		return false
	}
	correct := c.Evaluate()
	c.log.Debug("Sequence evaluated",
		zap.String("checker", c.name()),
		zap.Bool("correct", correct))
	if c.hub != nil {
		if correct {
			c.hub.Emit(SignalOrderCorrect, c.name())
		} else {
			c.hub.Emit(SignalOrderIncorrect, c.name())
		}
	}
	return correct
}

func (c *SequenceChecker) name() string {
	if obj := c.GetGameObject(); obj != nil {
		return obj.Name
	}
	return "SequenceChecker"
}
