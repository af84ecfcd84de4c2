package sheet

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Category names on the hero
const (
	CategoryAdvantages       = "Advantages"
	CategoryDisadvantages    = "Disadvantages"
	CategorySpecialAbilities = "Special Abilities"
	CategoryCheaperAbilities = "Cheaper Special Abilities"
)

// Listener is notified synchronously after a category changes
type Listener interface {
	CategoryChanged(c *Category)
}

// Entry holds either a single record or an ordered list of records for one
// feature name. The list form is used by features that take a variant or free
// text, so the same feature can be held several times.
type Entry struct {
	single *Record
	many   []*Record
}

// Single wraps one record
func Single(r *Record) Entry {
	return Entry{single: r}
}

// Many wraps an ordered list of records
func Many(records ...*Record) Entry {
	return Entry{many: records}
}

// IsMany reports whether the entry is in list form
func (e Entry) IsMany() bool {
	return e.single == nil
}

// Record returns the single record, or nil for list entries
func (e Entry) Record() *Record {
	return e.single
}

// Records returns every record of the entry
func (e Entry) Records() []*Record {
	if e.single != nil {
		return []*Record{e.single}
	}
	out := make([]*Record, len(e.many))
	copy(out, e.many)
	return out
}

// MarshalJSON writes a single entry as an object and a list entry as an array
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.single != nil {
		return json.Marshal(e.single)
	}
	return json.Marshal(e.many)
}

// UnmarshalJSON reads either form
func (e *Entry) UnmarshalJSON(data []byte) error {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			var many []*Record
			if err := json.Unmarshal(data, &many); err != nil {
				return err
			}
			*e = Many(many...)
			return nil
		default:
			var single Record
			if err := json.Unmarshal(data, &single); err != nil {
				return err
			}
			*e = Single(&single)
			return nil
		}
	}
	return fmt.Errorf("empty entry")
}

// Category is one group of features on the hero, e.g. advantages
type Category struct {
	name      string
	entries   map[string]Entry
	pool      int
	listeners []Listener
}

func newCategory(name string) *Category {
	return &Category{
		name:    name,
		entries: make(map[string]Entry),
	}
}

// Name returns the category name
func (c *Category) Name() string {
	return c.name
}

// Pool returns the stored maximum of the category's local pool
func (c *Category) Pool() int {
	return c.pool
}

// SetPool sets the stored pool maximum. It does not notify listeners.
func (c *Category) SetPool(max int) {
	c.pool = max
}

// Len returns the number of feature names held
func (c *Category) Len() int {
	return len(c.entries)
}

// Names returns the feature names in byte order
func (c *Category) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the category holds the feature
func (c *Category) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Entry returns the entry for a feature
func (c *Category) Entry(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Record returns the single record for a feature, or nil
func (c *Category) Record(name string) *Record {
	e, ok := c.entries[name]
	if !ok {
		return nil
	}
	return e.single
}

// Put stores a single record under name, replacing any previous entry
func (c *Category) Put(name string, r *Record) {
	c.entries[name] = Single(r)
	c.Notify()
}

// Append adds a record to the list entry for name
func (c *Category) Append(name string, r *Record) {
	e := c.entries[name]
	records := e.many
	if e.single != nil {
		records = []*Record{e.single}
	}
	c.entries[name] = Many(append(records, r)...)
	c.Notify()
}

// Remove removes one record instance of name. An emptied list is pruned.
func (c *Category) Remove(name string, r *Record) bool {
	e, ok := c.entries[name]
	if !ok {
		return false
	}

	if e.single != nil {
		if e.single != r {
			return false
		}
		delete(c.entries, name)
		c.Notify()
		return true
	}

	for i, candidate := range e.many {
		if candidate != r {
			continue
		}
		rest := make([]*Record, 0, len(e.many)-1)
		rest = append(rest, e.many[:i]...)
		rest = append(rest, e.many[i+1:]...)
		if len(rest) == 0 {
			delete(c.entries, name)
		} else {
			c.entries[name] = Many(rest...)
		}
		c.Notify()
		return true
	}
	return false
}

// Delete removes the whole entry for name
func (c *Category) Delete(name string) bool {
	if _, ok := c.entries[name]; !ok {
		return false
	}
	delete(c.entries, name)
	c.Notify()
	return true
}

// AddListener subscribes to changes of this category
func (c *Category) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// RemoveListener unsubscribes a listener added with AddListener
func (c *Category) RemoveListener(l Listener) {
	for i, candidate := range c.listeners {
		if candidate == l {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of subscribed listeners
func (c *Category) ListenerCount() int {
	return len(c.listeners)
}

// Notify dispatches to a snapshot of the listeners, so handlers may mutate the
// category or change subscriptions while being notified
func (c *Category) Notify() {
	if len(c.listeners) == 0 {
		return
	}
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	for _, l := range listeners {
		l.CategoryChanged(c)
	}
}

type categoryData struct {
	Pool    int              `json:"pool,omitempty"`
	Entries map[string]Entry `json:"entries"`
}

func (c *Category) strip() {
	c.pool = 0
	for _, e := range c.entries {
		for _, r := range e.Records() {
			r.Temporary = Ephemeral{}
		}
	}
}
