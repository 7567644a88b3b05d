// Package diagfmt renders diagnostic bags for terminals and machines.
package diagfmt
