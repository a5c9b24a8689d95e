package sitestructure

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Editions maps edition names to editions and remembers insertion order,
// which decides the fallback latest edition and the serialized key order.
type Editions struct {
	order  []string
	byName map[string]*Edition
}

// Set stores e under e.Name. Replacing an edition keeps its position.
func (es *Editions) Set(e *Edition) {
	if es.byName == nil {
		es.byName = map[string]*Edition{}
	}
	if _, ok := es.byName[e.Name]; !ok {
		es.order = append(es.order, e.Name)
	}
	es.byName[e.Name] = e
}

// Get returns the edition stored under name.
func (es Editions) Get(name string) (*Edition, bool) {
	e, ok := es.byName[name]
	return e, ok
}

// Names returns edition names in insertion order.
func (es Editions) Names() []string {
	return append([]string(nil), es.order...)
}

// Len is the number of editions.
func (es Editions) Len() int { return len(es.order) }

// MarshalJSON writes editions as an object whose keys keep insertion order.
func (es Editions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range es.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(es.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an editions object, recording key order.
func (es *Editions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("editions: expected object, got %v", tok)
	}
	*es = Editions{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("editions: expected key, got %v", tok)
		}
		var e Edition
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("editions: %s: %w", name, err)
		}
		if e.Name == "" {
			e.Name = name
		}
		es.order = append(es.order, name)
		if es.byName == nil {
			es.byName = map[string]*Edition{}
		}
		es.byName[name] = &e
	}
	_, err = dec.Token()
	return err
}
