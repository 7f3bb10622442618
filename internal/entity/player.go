package entity

// Player pairs a mark with a display color. The color is purely
// presentational; the engine only ever looks at the mark.
type Player struct {
	Mark  Mark   `json:"mark"`
	Color string `json:"color,omitempty"`
}

// DefaultPlayers is the classic lineup: X moves first.
func DefaultPlayers() []*Player {
	return []*Player{
		{Mark: PlayerX, Color: "blue"},
		{Mark: PlayerO, Color: "green"},
	}
}
