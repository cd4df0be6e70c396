// meta/meta.go
package meta

// DefaultDepth is the search horizon in plies for the computer side.
const DefaultDepth = 4

// DefaultGoroutines is the number of workers splitting the root of a search.
const DefaultGoroutines = 1

// MAX_TURNS bounds a computer-vs-computer game. Checkers can shuffle promoted pieces forever.
const MAX_TURNS = 300

// DefaultSeed seeds the random baseline agent.
const DefaultSeed = 7
