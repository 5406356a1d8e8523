// meta/meta.go
package meta

// SEARCH_DEPTH is the default minimax depth in plies.
const SEARCH_DEPTH = 4

// HISTORY_CAPACITY is the number of played positions a player remembers.
const HISTORY_CAPACITY = 10

// DOG_THRESHOLD is the dog count at or below which search scores a position as won by the jaguar.
const DOG_THRESHOLD = 5

// JAGUAR_WIN_DOGS is the dog count at or below which the referee ends the game for the jaguar.
const JAGUAR_WIN_DOGS = 9

// MAX_TURNS ends a refereed game as a draw.
const MAX_TURNS = 300

// GO_ROUTINES defines the number of self-play games run at once.
const GO_ROUTINES = 8
