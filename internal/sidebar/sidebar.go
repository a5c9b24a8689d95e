// Package sidebar projects the site structure into the renderer's navigation
// tree and derives the redirect map and listing artifacts from it.
package sidebar

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Item is a sidebar entry: either a bare page link or a nested node.
type Item struct {
	link string
	node *Node
}

// Link returns a leaf item pointing at a page.
func Link(page string) Item { return Item{link: page} }

// Group returns an item holding a nested node.
func Group(n Node) Item { return Item{node: &n} }

// IsLink reports whether the item is a bare link.
func (i Item) IsLink() bool { return i.node == nil }

// Page returns the link of a leaf item.
func (i Item) Page() string { return i.link }

// Node returns the nested node of a group item.
func (i Item) Node() (Node, bool) {
	if i.node == nil {
		return Node{}, false
	}
	return *i.node, true
}

// MarshalJSON writes a leaf as a string and a group as an object.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.node == nil {
		return json.Marshal(i.link)
	}
	return json.Marshal(*i.node)
}

// UnmarshalJSON accepts a string or an object.
func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("sidebar item: empty value")
	}
	if data[0] == '"' {
		*i = Item{}
		return json.Unmarshal(data, &i.link)
	}
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = Item{node: &n}
	return nil
}

// Node is a labeled sidebar entry. Top-level sections carry an icon and an
// id; nested groups usually carry only a label and items.
type Node struct {
	Label     string
	Link      string
	Icon      string
	ID        string
	Collapsed bool
	// Items is nil for a labeled link without children.
	Items []Item
}

type nodeJSON struct {
	Label     string  `json:"label"`
	Link      string  `json:"link,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	ID        string  `json:"id,omitempty"`
	Collapsed bool    `json:"collapsed,omitempty"`
	Items     *[]Item `json:"items,omitempty"`
}

// MarshalJSON omits items only when the node has none at all.
func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeJSON{Label: n.Label, Link: n.Link, Icon: n.Icon, ID: n.ID, Collapsed: n.Collapsed}
	if n.Items != nil {
		items := n.Items
		w.Items = &items
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads a node written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Node{Label: w.Label, Link: w.Link, Icon: w.Icon, ID: w.ID, Collapsed: w.Collapsed}
	if w.Items != nil {
		n.Items = *w.Items
		if n.Items == nil {
			n.Items = []Item{}
		}
	}
	return nil
}

// Sidebar is the ordered list of top-level sections.
type Sidebar []Node

// AddToSidebar appends items to the top-level section labeled label, or
// appends a new section with that label when none exists.
func AddToSidebar(s Sidebar, label string, items ...Item) Sidebar {
	for i := range s {
		if s[i].Label == label {
			s[i].Items = append(s[i].Items, items...)
			return s
		}
	}
	return append(s, Node{Label: label, Items: append([]Item{}, items...)})
}

// Section returns the top-level section labeled label.
func (s Sidebar) Section(label string) (Node, bool) {
	for _, n := range s {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}
