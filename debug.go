package silo

import "strings"

// ComponentsOf returns the ids of every component e currently carries, in
// registration order.
func (w *World) ComponentsOf(e EntityID) []ComponentID {
	var out []ComponentID
	for _, col := range w.columns {
		if col != nil && col.has(e) {
			out = append(out, col.id())
		}
	}
	return out
}

// ComponentsAsString renders e's current components as a comma-separated
// list of their registered names, for logging.
func (w *World) ComponentsAsString(e EntityID) string {
	var names []string
	for _, col := range w.columns {
		if col != nil && col.has(e) {
			names = append(names, col.name())
		}
	}
	return strings.Join(names, ", ")
}
