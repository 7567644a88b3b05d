// Package blanklines decides how many blank lines precede each definition,
// decorator, leading comment and statement that follows a definition.
//
// Run walks a pytree.Tree once in pre-order and stamps the decision on the
// first token of the affected construct through the tree's Newlines slot.
// A renderer reads the annotations afterwards; nodes left unset mean the
// original spacing is kept.
//
// Two style knobs drive the result:
//
//	BLANK_LINES_AROUND_TOP_LEVEL_DEFINITION  blank lines around module-level defs
//	BLANK_LINES_BETWEEN_CLASS_DEFS           blank lines between methods of one class
//
// The walk is single-threaded and mutates only the tree it is given; trees
// of different files can be annotated concurrently.
package blanklines
