// Package fileutils provides the file operations shared by the pipeline,
// the batch command and the upload handlers.
package fileutils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/docfields/internal/logging"
)

// pdfMagic must appear within the first headerWindow bytes of a PDF.
var pdfMagic = []byte("%PDF-")

const headerWindow = 1024

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// CreateFile creates or truncates a file for writing, creating parent directories as needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.Create(filePath) // #nosec G304 -- CLI tool requires user-provided output paths
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// HasPDFExtension reports whether name ends in .pdf, ignoring case.
func HasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// SniffPDF checks that filePath is a readable regular file whose header
// carries the PDF signature. A nil error means the file looks like a PDF.
func SniffPDF(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filePath)
	}

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return fmt.Errorf("missing PDF signature")
	}
	return nil
}

// ListPDFFiles returns the PDF files under dirPath, sorted by path.
func ListPDFFiles(dirPath string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && HasPDFExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// RemoveQuietly deletes a temporary file, logging anything but a missing file.
func RemoveQuietly(filePath string, logger logging.Logger) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logging.OrDefault(logger).WithError(err).Warn("Failed to remove temporary file",
			logging.Field{Key: logging.FieldFile, Value: filePath})
	}
}
