// Package naming generates server names for numbered instance groups.
//
// A group of one keeps the base name unchanged; larger groups append the
// 1-based index as "{base}-{i}".
package naming
