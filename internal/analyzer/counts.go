package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Count is one key of an ordered count mapping.
type Count struct {
	Key   string
	Value int
}

// Counts is a count mapping that keeps its order when serialized as a JSON
// object.
type Counts []Count

// Get returns the value for key and whether it is present.
func (c Counts) Get(key string) (int, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Keys returns the keys in order.
func (c Counts) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// SortDesc orders by value, largest first, keeping the current order among
// equal values.
func (c Counts) SortDesc() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Value > c[j].Value
	})
}

// MarshalJSON writes the mapping as a JSON object in slice order.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order.
func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("counts: expected object, got %v", tok)
	}

	out := Counts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v int
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("counts: value for %q: %w", key, err)
		}
		out = append(out, Count{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// counter accumulates counts while remembering first-seen order.
type counter struct {
	index map[string]int
	items Counts
}

func newCounter() *counter {
	return &counter{index: make(map[string]int), items: Counts{}}
}

func (c *counter) add(key string, n int) {
	if i, ok := c.index[key]; ok {
		c.items[i].Value += n
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, Count{Key: key, Value: n})
}
