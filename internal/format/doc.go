// Package format rewrites the vertical spacing of a source file from the
// blank line annotations computed on its syntax tree. Only runs of blank
// lines directly above annotated lines change; every other byte is copied.
package format
