package game

// NumSeats is the number of seats at a Belot table
const NumSeats = 4

// NumTeams is the number of teams (opposite seats are partners)
const NumTeams = 2

// Seat identifies one of the four fixed table positions, clockwise
type Seat int

// Next returns the seat that acts after this one in cyclic order
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Team returns the team this seat belongs to. Seats 0 and 2 form team A,
// seats 1 and 3 form team B.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Partner returns the seat sitting opposite
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Team identifies one of the two partnerships
type Team int

const (
	TeamA Team = iota
	TeamB
)

// Other returns the opposing team
func (t Team) Other() Team {
	return 1 - t
}

// String returns the display name of the team
func (t Team) String() string {
	if t == TeamA {
		return "Team A"
	}
	return "Team B"
}

// PlayerType identifies the decision source backing a seat
type PlayerType int

const (
	Human PlayerType = iota
	Computer
)

// String returns the string representation of the player type
func (pt PlayerType) String() string {
	if pt == Human {
		return "human"
	}
	return "computer"
}

// Player describes one seat's occupant. Avatar is cosmetic and carried only
// for the display layer.
type Player struct {
	Name   string
	Type   PlayerType
	Avatar string
}
