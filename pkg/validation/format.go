// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/hwen6/loan-ledger/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX, constants.OutputFormatPDF:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX, constants.OutputFormatPDF, format)
}

// ValidateOutputTarget checks the output format and that the binary formats
// have a file destination; xlsx and pdf cannot stream to stdout.
func ValidateOutputTarget(format, outputFile string) error {
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	if (format == constants.OutputFormatXLSX || format == constants.OutputFormatPDF) && outputFile == "" {
		return fmt.Errorf("output format %s requires an output file", format)
	}
	return nil
}
