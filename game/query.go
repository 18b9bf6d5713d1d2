package game

// Query is a partially specified action. Unset fields match anything.
type Query struct {
	Type   ActionType `json:"type"`
	Origin *Hex       `json:"origin,omitempty"`
	Insect *Insect    `json:"piece_kind,omitempty"`
}

// Destinations returns the sorted destinations of the legal actions matching q.
func Destinations(s State, q Query) []Hex {
	seen := make(map[Hex]bool)
	var hexes []Hex
	for _, action := range s.LegalActions() {
		var destination Hex
		switch action := action.(type) {
		case Move:
			if q.Type != MoveAction || (q.Origin != nil && *q.Origin != action.Origin) {
				continue
			}
			destination = action.Destination
		case Drop:
			if q.Type != DropAction || (q.Insect != nil && *q.Insect != action.Stone.Insect) {
				continue
			}
			destination = action.Destination
		default:
			continue
		}
		if !seen[destination] {
			seen[destination] = true
			hexes = append(hexes, destination)
		}
	}
	sortHexes(hexes)
	return hexes
}
