package interaction

// Signal names published on the scene's signal hub. These are the only
// coupling between the puzzle components; nothing calls another component
// directly.
const (
	SignalOrderCorrect   = "order-correct"
	SignalOrderIncorrect = "order-incorrect"
	SignalTriggerEnter   = "trigger-enter"
)
