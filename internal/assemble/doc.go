// Package assemble turns corpus sources into finished documents: AEPs from a
// template and metadata pair, overview pages, consolidated linter rules and
// component schemas.
//
// A failure in one document never aborts a batch. The batch records the
// folder and cause, logs a warning and moves on.
package assemble
