package factory

import (
	"iter"

	"github.com/toyz/matchgen/internal/errors"
	"github.com/toyz/matchgen/internal/models"
)

type cursorState int

const (
	cursorFresh cursorState = iota
	cursorReady
	cursorDone
)

// Cursor pulls factory methods one at a time:
//
//	c := reader.Cursor()
//	defer c.Close()
//	for c.Next() {
//		method, _ := c.Method()
//		...
//	}
//	if err := c.Err(); err != nil {
//		...
//	}
type Cursor struct {
	next    func() (models.FactoryMethod, error, bool)
	stop    func()
	state   cursorState
	current models.FactoryMethod
	err     error
}

func newCursor(seq iter.Seq2[models.FactoryMethod, error]) *Cursor {
	next, stop := iter.Pull2(seq)
	return &Cursor{next: next, stop: stop}
}

// Next advances to the next factory method and reports whether there is one
func (c *Cursor) Next() bool {
	if c.state == cursorDone {
		return false
	}

	method, err, ok := c.next()
	if !ok || err != nil {
		c.err = err
		c.current = models.FactoryMethod{}
		c.state = cursorDone
		c.stop()
		return false
	}

	c.current = method
	c.state = cursorReady
	return true
}

// Method returns the current factory method. Calling it before Next or after
// Next returned false is an IllegalStateError.
func (c *Cursor) Method() (models.FactoryMethod, error) {
	switch c.state {
	case cursorFresh:
		return models.FactoryMethod{}, errors.NewIllegalStateError("Method called without a Next check")
	case cursorDone:
		return models.FactoryMethod{}, errors.NewIllegalStateError("Method called on an exhausted cursor")
	}
	return c.current, nil
}

// Err returns the fatal error that ended the scan, if any
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the cursor. It is safe to call more than once.
func (c *Cursor) Close() {
	c.state = cursorDone
	c.stop()
}
