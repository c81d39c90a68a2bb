// Package userconf validates untrusted JSON text against flat schemas and
// converts it into typed values without panicking.
//
// Validation runs in two stages:
//
//   - The syntax stage (DecodeJSON) turns text into an untyped value tree. Any
//     decoding failure is an Issue of KindSyntax with the message "Invalid JSON".
//   - The shape stage (Schema.Check) walks the tree and returns either the typed
//     value or the first, most specific Issue of KindShape.
//
// ArrayOf lifts an element schema to a homogeneous array and tags the first
// failing element with its index ("At index 1: ...").
//
// Design policy:
//   - Keep the public API in the root package; put tokenizers under source/ and
//     the tree builder under internal/engine.
//   - Results are values: every outcome is a Result, nothing is thrown.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	r := userconf.ParseJSON(user.Schema, input)
//	if u, ok := r.Value(); ok {
//		...
//	}
//	fmt.Println(r.Error())
package userconf
