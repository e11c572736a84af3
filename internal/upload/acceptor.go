// =============================================================================
// PO Tracker - Upload Acceptance Policy
// =============================================================================
//
// This module decides whether a candidate upload may enter the import pipeline
// at all. It runs before any bytes are parsed, so a rejected candidate costs
// nothing beyond the checks below.
//
// POLICY:
//   - Maximum file size: 5 MiB (5,242,880 bytes)
//   - Allowed MIME types: xlsx, legacy xls, csv
//   - Allowed extensions: .xlsx, .xls, .csv (case-insensitive)
//
// All violations are collected and reported together so the user can fix
// everything in one pass. The only short-circuit is a missing candidate.
//
// =============================================================================

package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest upload the pipeline accepts, in bytes.
const MaxFileSize = 5 * 1024 * 1024

// allowedMIMETypes is the allow-set for the declared content type.
// A missing declaration is tolerated; the extension check still applies.
var allowedMIMETypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":                                          true,
	"text/csv":                                                          true,
}

// allowedExtensions is the allow-set for the file name extension.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// Candidate describes an upload before any parsing is attempted.
// It exists only for the duration of one import attempt.
type Candidate struct {
	// Name is the file name as supplied by the uploader.
	Name string

	// Size is the byte length of the upload.
	Size int64

	// DeclaredMIMEType is the content type declared by the uploader.
	// May be empty; browsers do not always send one.
	DeclaredMIMEType string
}

// Result is the outcome of an acceptance check.
type Result struct {
	// Valid is true when no policy rule was violated.
	Valid bool

	// Errors lists every violated rule, in check order
	// (size, type, extension). Empty when Valid.
	Errors []string
}

// Validate checks a candidate against the acceptance policy.
//
// It is a pure function: same candidate in, same result out, no side effects.
// A nil candidate yields exactly one error and no further checks run.
func Validate(candidate *Candidate) Result {
	if candidate == nil {
		return Result{Valid: false, Errors: []string{"No file provided"}}
	}

	var errs []string

	// Size check. Does not short-circuit: the remaining checks still run so
	// every problem is reported at once.
	if candidate.Size > MaxFileSize {
		errs = append(errs, fmt.Sprintf("File size exceeds the %d byte (5 MB) limit", MaxFileSize))
	}

	// Type check, only when the uploader declared a type.
	if candidate.DeclaredMIMEType != "" && !allowedMIMETypes[candidate.DeclaredMIMEType] {
		errs = append(errs, "Invalid file type. Please upload an Excel (.xlsx, .xls) or CSV file")
	}

	// Extension check, case-insensitive.
	ext := strings.ToLower(filepath.Ext(candidate.Name))
	if !allowedExtensions[ext] {
		errs = append(errs, "Invalid file extension. Allowed extensions: .xlsx, .xls, .csv")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
