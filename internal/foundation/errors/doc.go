// Package errors provides the classified error type used at the boundaries of
// aepsite (configuration, source checkout, output writing, CLI and HTTP).
//
// Package-level failures are plain sentinel errors wrapped with fmt.Errorf.
// When such a failure crosses into the CLI or the preview server it is
// wrapped in a ClassifiedError that carries a category, a severity and
// structured context, so the adapters can pick an exit code or status code.
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write output").
//		WithContext("path", path).
//		Build()
package errors
