package dto

// Stats is a point-in-time snapshot of the admission queue.
type Stats struct {
	Pending   int
	Running   int
	MaxActive int
}
