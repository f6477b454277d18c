// Package ast holds the arena-based syntax tree for ECMAScript modules.
// Nodes live in per-kind payload arenas addressed by 1-based IDs; a node's
// Span always points at the original source bytes, even after a rewrite
// overwrites its kind and payload, which is what lets the emitter splice
// printed replacements into otherwise untouched source text.
package ast
