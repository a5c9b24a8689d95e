// Package rewrite converts AEP template text into MDX.
//
// A Rewriter applies an ordered list of passes. Every pass is a pure function
// from a Result to a Result: it returns new text and, when it emits a
// component tag, a component registry that includes the import for that tag.
// Passes declare the passes they must follow, and the run order is the
// topological order of those declarations.
//
// Default pass order:
//
//	samples, tabs, html_comments, escapes, callouts, rule_identifiers,
//	remove_title, link_paths, fence_languages, aep_links_bracket,
//	aep_links_bare, aep_links_plain, images
package rewrite
