package game

// Side identifies the piece type to move. Its value is the character used on the wire.
type Side byte

const (
	JaguarSide Side = 'o'
	DogSide    Side = 'c'
)

const (
	Rows    = 7  // Playable rows are 1..Rows
	Cols    = 5  // Playable columns are 1..Cols
	MaxDogs = 14 // Dogs on the opening board
)

func (s Side) Opponent() Side {
	if s == JaguarSide {
		return DogSide
	}
	return JaguarSide
}

func (s Side) Valid() bool {
	return s == JaguarSide || s == DogSide
}

func (s Side) String() string {
	if s == 0 {
		return "none"
	}
	return string(s)
}
