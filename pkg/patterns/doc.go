// Package patterns builds the pattern-library tree from parsed file records.
//
// The tree is an explicit union of three node kinds. A Namespace mirrors a
// source directory; a Collection aggregates the patterns found directly in
// one directory; a Pattern is a single content fragment. Every Pattern and
// Collection carries a dotted resource ID — the key path from the tree root
// down to the node — which later derives its output location.
//
// "id" on patterns and "items"/"patterns" on collections are reserved: the
// builder assigns them, and front matter declaring them fails the whole
// build.
//
// A Collection's Patterns slice is a derived view over Items: entries named
// in the collection's "order" list come first in that order, the rest follow
// in natural key order, and hidden patterns are dropped. Items always holds
// every discovered pattern. Because ordering depends only on keys and the
// declared order, the built tree is identical for a fixed record set no
// matter what order the records were read in.
package patterns
