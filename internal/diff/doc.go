// Package diff turns raw diff data into renderable structures: a unified diff
// parser, an LCS edit-script differ, and word-level highlighting of changed
// line pairs built on top of it.
//
// Nothing in this package performs I/O or returns errors on malformed input;
// diff text is display data and degrades to fewer hunks instead.
package diff
