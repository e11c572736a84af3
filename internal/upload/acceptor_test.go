package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNilCandidate(t *testing.T) {
	res := Validate(nil)

	assert.False(t, res.Valid)
	// Missing candidate short-circuits: exactly one error, nothing else checked.
	require.Equal(t, []string{"No file provided"}, res.Errors)
}

func TestValidateSizeBoundary(t *testing.T) {
	atLimit := Validate(&Candidate{Name: "orders.xlsx", Size: MaxFileSize})
	assert.True(t, atLimit.Valid, "a file exactly at the cap must pass")

	overLimit := Validate(&Candidate{Name: "orders.xlsx", Size: MaxFileSize + 1})
	assert.False(t, overLimit.Valid)
	require.Len(t, overLimit.Errors, 1)
	assert.Contains(t, overLimit.Errors[0], "size")
}

func TestValidateExtensionDominatesMissingMIME(t *testing.T) {
	// No declared MIME type at all: the extension alone decides.
	res := Validate(&Candidate{Name: "report.CSV", Size: 1000})
	assert.True(t, res.Valid)
}

func TestValidateRejectsExecutable(t *testing.T) {
	// Scenario: wrong type AND wrong extension co-occur and are both reported.
	res := Validate(&Candidate{
		Name:             "x.exe",
		Size:             1000,
		DeclaredMIMEType: "application/x-msdownload",
	})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "file type")
	assert.Contains(t, res.Errors[1], "extension")
}

func TestValidateAllowedMIMETypes(t *testing.T) {
	for _, mime := range []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"text/csv",
	} {
		res := Validate(&Candidate{Name: "f.xlsx", Size: 10, DeclaredMIMEType: mime})
		assert.True(t, res.Valid, "MIME %s should be accepted", mime)
	}
}

func TestValidateIsPure(t *testing.T) {
	candidate := &Candidate{Name: "big.exe", Size: MaxFileSize * 2, DeclaredMIMEType: "application/octet-stream"}

	first := Validate(candidate)
	second := Validate(candidate)

	require.Equal(t, first, second, "same input must yield identical results")
	assert.Len(t, first.Errors, 3, "size, type and extension all reported together")
}
