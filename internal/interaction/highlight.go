package interaction

import (
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/signal"
	"Puzzle3D/internal/visual"
)

// Highlighter switches its GameObject's surface between the normal color and
// a configured flagged color. The surface's material may be shared, so the
// first tint clones it once; the clone is released exactly once when the
// component is destroyed. A target that cannot be tinted turns the component
// into a permanent no-op after a single warning.
type Highlighter struct {
	behaviour.BaseComponent
	flagged [3]float32
	log     *zap.Logger

	checked  bool
	capable  bool
	target   visual.Tintable
	clone    *visual.Material
	original [3]float32
	released bool

	subs []*signal.Subscription
}

func NewHighlighter(flagged [3]float32, log *zap.Logger) *Highlighter {
	return &Highlighter{
		flagged: flagged,
		log:     logger.Or(log),
	}
}

func (h *Highlighter) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeHighlight
}

func (h *Highlighter) GetTypeName() string {
	return "Highlighter"
}

// Start runs the capability check so a missing or untintable target is
// reported once, before the first flag request.
func (h *Highlighter) Start() {
	h.ensureTarget()
}

// ensureTarget resolves the tint target once and caches the verdict.
func (h *Highlighter) ensureTarget() bool {
	if h.checked {
		return h.capable
	}
	h.checked = true

	obj := h.GetGameObject()
	if obj == nil || obj.Visual() == nil {
		h.log.Error("Highlighter has no visual target, disabling",
			zap.String("object", h.name()))
		return false
	}
	target, ok := obj.Visual().(visual.Tintable)
	if !ok {
		h.log.Warn("Visual target does not support tinting",
			zap.String("object", h.name()))
		return false
	}
	mat := target.Material()
	if mat == nil {
		h.log.Warn("Visual target has no material",
			zap.String("object", h.name()))
		return false
	}
	h.target = target
	h.original = mat.DiffuseColor
	h.capable = true
	return true
}

// ensureClone duplicates the bound material on first use so tinting never
// leaks into other objects sharing it.
func (h *Highlighter) ensureClone() bool {
	if h.clone != nil {
		return true
	}
	h.clone = h.target.Material().Clone()
	if h.clone == nil {
		h.capable = false
		h.log.Warn("Material clone failed, disabling tint",
			zap.String("object", h.name()))
		return false
	}
	return true
}

// SetFlagged tints the surface with the configured flagged color.
func (h *Highlighter) SetFlagged() {
	if !h.ensureTarget() || !h.ensureClone() {
		return
	}
	h.clone.DiffuseColor = h.flagged
	h.target.SetMaterial(h.clone)
	h.log.Debug("Surface flagged", zap.String("object", h.name()))
}

// Restore puts back the color captured when the component started.
func (h *Highlighter) Restore() {
	if !h.ensureTarget() {
		return
	}
	if h.clone == nil {
		// Never flagged, nothing to undo.
		return
	}
	h.clone.DiffuseColor = h.original
	h.target.SetMaterial(h.clone)
	h.log.Debug("Surface restored", zap.String("object", h.name()))
}

// BindHub wires the highlighter to the order verdict signals: incorrect
// flags, correct restores.
func (h *Highlighter) BindHub(hub *signal.Hub) {
	if hub == nil {
		return
	}
	h.subs = append(h.subs,
		hub.Subscribe(SignalOrderIncorrect, func(signal.Event) { h.SetFlagged() }),
		hub.Subscribe(SignalOrderCorrect, func(signal.Event) { h.Restore() }),
	)
}

// OnDestroy releases the cloned material exactly once and cancels the hub
// subscriptions.
func (h *Highlighter) OnDestroy() {
	for _, sub := range h.subs {
		sub.Cancel()
	}
	h.subs = nil

	if h.clone != nil && !h.released {
		h.released = true
		if err := h.target.ReleaseMaterial(h.clone); err != nil {
			h.log.Warn("Material release failed",
				zap.String("object", h.name()),
				zap.Error(err))
		}
		h.clone = nil
	}

	// A destroyed highlighter stays a no-op even if someone keeps calling it.
	h.checked = true
	h.capable = false
}

func (h *Highlighter) name() string {
	if obj := h.GetGameObject(); obj != nil {
		return obj.Name
	}
	return "<detached>"
}
