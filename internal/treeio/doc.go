// Package treeio reads and writes serialized syntax tree documents and the
// annotation reports produced from them.
//
// A document names the source file it was parsed from and holds the tree
// in the lib2to3 shape:
//
//	{"path": "pkg/a.py", "root": {"sym": "file_input", "children": [
//	    {"sym": "simple_stmt", "children": [
//	        {"tok": "NAME", "value": "x", "line": 1, "col": 0}, ...]}]}}
//
// The same schema is accepted as msgpack.
package treeio
