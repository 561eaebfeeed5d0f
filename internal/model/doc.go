// Package model provides concrete analysis objects that take part in
// optimization: panels that own thickness design variables and constraint
// blocks that couple them.
//
// Every type embeds refcount.Base and is created unowned; wrap constructor
// results with refcount.Own. Constraint blocks keep a private copy of the
// last design vector they were handed and read only the entries their
// column lists name.
package model
