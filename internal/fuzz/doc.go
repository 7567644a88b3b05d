// Package fuzztests houses Go fuzz harnesses for the document decoder and
// the blank line walker. They guard against panics on arbitrary input and
// check that annotations keep their invariants.
package fuzztests
