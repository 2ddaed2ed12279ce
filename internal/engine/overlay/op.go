package overlay

// Op is the result of an asynchronous engine operation.
type Op struct {
	done chan struct{}
	err  error
}

func newOp() *Op {
	return &Op{done: make(chan struct{})}
}

func finishedOp(err error) *Op {
	op := newOp()
	op.finish(err)
	return op
}

// Done is closed once the operation's effects have been applied.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Err returns the operation's error. It is only meaningful after Done is closed.
func (o *Op) Err() error {
	return o.err
}

func (o *Op) finish(err error) {
	o.err = err
	close(o.done)
}
