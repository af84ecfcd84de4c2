// Package points provides the observable integer counters used for the local
// category pools and the shared generation-point budgets.
package points

// Watcher is called after a counter changes value
type Watcher func(old, new int)

// Counter is a named integer that notifies watchers on change.
// Counters are not safe for concurrent use; character generation runs on a
// single goroutine.
type Counter struct {
	name     string
	value    int
	watchers map[int]Watcher
	nextID   int
}

// NewCounter creates a counter with an initial value
func NewCounter(name string, initial int) *Counter {
	return &Counter{
		name:     name,
		value:    initial,
		watchers: make(map[int]Watcher),
	}
}

// Name returns the counter's name
func (c *Counter) Name() string {
	return c.name
}

// Get returns the current value
func (c *Counter) Get() int {
	return c.value
}

// Set stores a value and notifies watchers if it changed
func (c *Counter) Set(v int) {
	old := c.value
	if old == v {
		return
	}
	c.value = v
	for _, w := range c.snapshot() {
		w(old, v)
	}
}

// Add adjusts the value by delta
func (c *Counter) Add(delta int) {
	c.Set(c.value + delta)
}

// Watch registers a watcher and returns a func that removes it
func (c *Counter) Watch(w Watcher) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.watchers[id] = w
	return func() {
		delete(c.watchers, id)
	}
}

func (c *Counter) snapshot() []Watcher {
	if len(c.watchers) == 0 {
		return nil
	}
	out := make([]Watcher, 0, len(c.watchers))
	for i := 0; i < c.nextID; i++ {
		if w, ok := c.watchers[i]; ok {
			out = append(out, w)
		}
	}
	return out
}
