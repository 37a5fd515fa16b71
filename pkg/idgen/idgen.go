// Package idgen provides monotonic integer identifiers for groups, nodes,
// arcs and exclusivity sets created during one instance-generation pass.
package idgen

// Incrementer returns consecutive integers starting from an offset.
// It is not safe for concurrent use. A new pass starts with a new
// Incrementer, so identifiers of every instance are dense from the offset.
type Incrementer struct {
	next int
}

// New creates an Incrementer whose first Next() returns start.
func New(start int) *Incrementer {
	return &Incrementer{next: start}
}

// Next returns the current value and advances the counter.
func (i *Incrementer) Next() int {
	res := i.next
	i.next++
	return res
}

// Peek returns the value the next call to Next will produce.
func (i *Incrementer) Peek() int {
	return i.next
}
