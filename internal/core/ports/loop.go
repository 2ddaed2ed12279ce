package ports

// EventLoop runs continuations on the single goroutine that owns the overlay state.
//
//go:generate mockgen -source=loop.go -destination=mocks/mock_loop.go -package=mocks
type EventLoop interface {
	// Post schedules fn to run on the loop. It never blocks and is safe from any goroutine.
	Post(fn func())
}
