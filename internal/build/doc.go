// Package build runs the site build.
//
// A build is one linear pass: sync sources, assemble every edition's AEPs,
// render pages, blog, linter rules and component schemas, then emit the
// navigation artifacts and the llms.txt export. Per-document and
// per-source problems are recorded as warnings in the Report and the build
// continues. Only a failed output write aborts the run.
package build
