// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxFileSize caps descriptor files at 1 MiB. Descriptors are small by
// nature; anything larger is almost certainly a mistake and would only slow
// the CUE evaluator down.
const MaxFileSize = 1 << 20

// Decode parses data against an embedded CUE schema and decodes the unified
// value into T.
//
// The flow is:
//
//  1. Compile the embedded schema and look up defPath (e.g. "#Workmod")
//  2. Compile the user data
//  3. Unify, validate with cue.Concrete, decode into T
//
// filename is used only for error messages.
func Decode[T any](schema, data []byte, defPath, filename string) (*T, error) {
	if filename == "" {
		filename = "<input>"
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: file exceeds maximum size of %d bytes", filename, MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(defPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}
	return &result, nil
}
