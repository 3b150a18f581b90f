// Package source turns user supplied input (an uploaded file or pasted text)
// into UTF-8 CSV text ready for conversion.
//
// A file takes precedence over text. Files must carry a .csv name and have
// their bytes decoded to UTF-8; pasted text is trimmed of surrounding white
// space and used as is.
package source

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotCSV is returned when a file name does not end in .csv.
	ErrNotCSV = errors.New("please upload a valid CSV file")

	// ErrNoInput is returned when there is neither a file nor non-blank text.
	ErrNoInput = errors.New("please upload a CSV file or paste CSV data")
)

// Extension is the required file name suffix. The match is case sensitive.
const Extension = ".csv"

// Input describes one conversion request.
type Input struct {
	// Name is the file name; empty when no file was supplied.
	Name string

	// File holds the file contents; nil when no file was supplied.
	File io.Reader

	// Text is pasted CSV data, used only when File is nil.
	Text string
}

// Resolve returns the CSV text for in.
func Resolve(in Input) (string, error) {
	if in.File != nil {
		if err := CheckName(in.Name); err != nil {
			return "", err
		}
		text, err := Decode(in.File)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", in.Name, err)
		}
		return text, nil
	}
	return Text(in.Text)
}

// CheckName reports ErrNotCSV unless name ends with Extension.
func CheckName(name string) error {
	if !strings.HasSuffix(name, Extension) {
		return ErrNotCSV
	}
	return nil
}

// Text trims pasted input, returning ErrNoInput when nothing is left.
func Text(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoInput
	}
	return s, nil
}
