// Package syntax classifies single lines of source text into semantic
// categories using ordered, per-language pattern rules.
//
// A Language is an ordered list of Rules. Compile turns it into an immutable
// RuleTable, and a Registry maps language names and file extensions to
// tables. Classification is data driven: one tokenizer consumes any table.
//
// For each rule in order, every non-overlapping match in the line produces a
// Span. Spans of different rules may overlap; a later rule wins for the bytes
// it covers. Paint resolves that precedence into the non-overlapping runs a
// renderer draws.
//
//	reg, _ := syntax.NewRegistry(syntax.Builtin()...)
//	spans := reg.Classify("def foo():", "Python")
//	// keyword[0,3) function[0,7)
//	painted := syntax.Paint(spans, len("def foo():"))
//	// function[0,7)
//
// Lines are classified independently. Constructs that span lines, such as
// block comments, are only recognized when they open and close on one line.
//
// Rule tables come from the built-in definitions, YAML rule files
// (ParseYAML) and sandboxed Lua scripts (EvalLua). A rule whose pattern does
// not compile disables its language only; the rest of the registry is built.
package syntax
