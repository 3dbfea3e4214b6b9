package domain

// Represents an intersection of the road network.
// Capacity is informational only; the solvers never read it.
type Node struct {
	ID          int64
	Name        string
	Coordinates Coordinates
	Capacity    int
}
