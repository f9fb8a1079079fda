// Package spec reads grammar sources and defines the data formats handed to presentation layers.
//
// A grammar source holds one alternative per line:
//
//	<S> -> <A> "b"
//	<A> -> "a"
//	<A> -> <epsilon>
//
// The parser only splits lines; it neither classifies symbols nor validates references. Those are the
// job of package grammar.
package spec

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ffgram.spec'.
func tracer() tracing.Trace {
	return tracing.Select("ffgram.spec")
}
