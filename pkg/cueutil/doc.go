// SPDX-License-Identifier: MPL-2.0

// Package cueutil implements the schema-unify-decode flow used to load CUE
// documents into Go structs. A caller supplies an embedded schema, the raw
// file bytes, and the path of the root definition (e.g. "#Workmod"); the
// package compiles both, unifies them, validates the result for concreteness
// and decodes it. Validation failures are reported with the offending field
// path so users can locate mistakes in their descriptor files.
package cueutil
