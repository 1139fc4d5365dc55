// Package yson is a streaming reader for two related document formats: a
// permissive textual JSON dialect and the binary UBJSON encoding. It exposes
// a forward-only cursor that navigates the logical tree of values, keys,
// arrays and objects in an input source, decoding scalar values into native
// Go types on demand, plus a materializing API that builds an in-memory tree
// from the same cursor.
//
// JSON extensions
//
// yson's JSON reader accepts several documented extensions beyond standard
// JSON, each gated by a JSONOptions bit: "//" and "/* */" comments,
// triple-quoted block strings that may span lines, trailing commas before a
// closing bracket or brace, unquoted identifier-like object keys,
// binary/octal/hex integer literals with "_" digit separators, and the
// extended float literals Infinity, -Infinity and NaN. Single-quoted strings
// are also accepted; no option bit gates them. yson is not a validating JSON
// conformance checker: accepting these extensions is a deliberate design
// choice, not a defect.
//
// UBJSON
//
// yson's UBJSON reader implements the Universal Binary JSON specification,
// including optimized (homogeneously typed and/or count-prefixed) array and
// object containers.
//
// Testing
//
// yson is tested with table-driven cases comparing reader output against
// both the decoded scalar values and the raw token stream, along with
// boundary cases for integer/float overflow and truncated multi-chunk
// input.
package yson
