// =============================================================================
// Card View - File Management Utilities
// =============================================================================
//
// This module provides utilities for file operations including:
//   - Discovering record files in the input directory
//   - Generating output file names
//   - Archiving processed files
//   - Writing error and summary logs
//
// DIRECTORY STRUCTURE:
//   input/           - Record files waiting to be rendered
//   output/          - Rendered card documents
//   input_archive/   - Record files after a successful render
//   output_archive/  - Copies of every rendered document
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the renderer.
type FileManager struct {
	// InputDir is the directory containing record files.
	InputDir string

	// OutputDir is the directory for rendered documents.
	OutputDir string

	// InputArchiveDir is the directory for archived record files.
	InputArchiveDir string

	// OutputArchiveDir is the directory for archived documents.
	OutputArchiveDir string

	// UseTimestampSubdirs creates YYYY/MM/DD subdirectories in archives.
	// Default: false
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the given directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir, outputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		OutputArchiveDir: outputArchiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
		fm.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles finds the files in the input directory that accept
// reports as loadable. Subdirectories and hidden files are skipped.
//
// RETURNS:
//   - File paths sorted by name.
func (fm *FileManager) DiscoverInputFiles(accept func(path string) bool) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(fm.InputDir, name)
		if accept == nil || accept(path) {
			result = append(result, path)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVING
// =============================================================================

// ArchiveInputFile moves a record file to the input archive directory.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archiving fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	archivePath, err := fm.prepareArchivePath(fm.InputArchiveDir, filePath)
	if err != nil {
		return "", err
	}

	// Rename is atomic on the same filesystem; fall back to copy and remove.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// ArchiveOutputFile copies a rendered document to the output archive
// directory. The original stays in the output directory.
func (fm *FileManager) ArchiveOutputFile(filePath string) (string, error) {
	archivePath, err := fm.prepareArchivePath(fm.OutputArchiveDir, filePath)
	if err != nil {
		return "", err
	}

	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}

	return archivePath, nil
}

// prepareArchivePath creates the archive directory and returns a path that
// does not overwrite an earlier archive of the same name.
func (fm *FileManager) prepareArchivePath(archiveDir, filePath string) (string, error) {
	dir := archiveDir
	if fm.UseTimestampSubdirs {
		now := time.Now()
		dir = filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(dir, filepath.Base(filePath))
	if FileExists(archivePath) {
		ext := filepath.Ext(archivePath)
		base := strings.TrimSuffix(filepath.Base(archivePath), ext)
		archivePath = filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405.000000000"), ext))
	}
	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GenerateOutputFileName generates an output file name from a pattern.
//
// PARAMETERS:
//   - format: The file name pattern.
//   - ext: The extension to ensure, including the dot (e.g. ".txt").
//   - params: Extra placeholder values, e.g. {"card": "events"}.
//
// PLACEHOLDERS:
//   - {uuid}:      A random UUID
//   - {timestamp}: Current timestamp (YYYYMMDD_HHMMSS)
//   - {date}:      Current date (YYYYMMDD)
//   - {time}:      Current time (HHMMSS)
//   - {<param>}:   Any key of params
//
// Placeholder values are reduced to file-name-safe characters.
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = strings.Trim(unsafeNameChars.ReplaceAllString(value, "_"), "_")
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// =============================================================================
// ERROR LOGGING
// =============================================================================

// ErrorLogEntry represents one failed file.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	Card         string
	ErrorType    string
	ErrorMessage string
}

// WriteErrorLog writes failed files to a timestamped log in outputDir.
//
// RETURNS:
//   - The path to the log file, or "" when there is nothing to log.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	logPath := filepath.Join(outputDir, fmt.Sprintf("error_log_%s.txt", time.Now().Format("20060102_150405")))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Card View - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:  %s\n"+
			"  File:       %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName)
		if entry.Card != "" {
			fmt.Fprintf(writer, "  Card:       %s\n", entry.Card)
		}
		fmt.Fprintf(writer, "  Error Type: %s\n  Message:    %s\n\n", entry.ErrorType, entry.ErrorMessage)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// SUMMARY LOGGING
// =============================================================================

// ProcessingSummary contains summary information for a render run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRecords    int
	TotalCards      int
	TotalLines      int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a rendered file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	Card        string
	Records     int
	Cards       int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a run summary to a timestamped file in outputDir.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", time.Now().Format("20060102_150405")))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writer.WriteString(FormatSummary(summary))

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// FormatSummary renders a run summary as text.
func FormatSummary(summary ProcessingSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Card View - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:  %s\n"+
		"  End Time:    %s\n"+
		"  Duration:    %s\n\n"+
		"Statistics:\n"+
		"  Total Files: %s\n"+
		"  Successful:  %s\n"+
		"  Failed:      %s\n"+
		"  Records:     %s\n"+
		"  Cards:       %s\n"+
		"  Lines:       %s\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond).String(),
		humanize.Comma(int64(summary.TotalFiles)),
		humanize.Comma(int64(summary.SuccessfulFiles)),
		humanize.Comma(int64(summary.FailedFiles)),
		humanize.Comma(int64(summary.TotalRecords)),
		humanize.Comma(int64(summary.TotalCards)),
		humanize.Comma(int64(summary.TotalLines)))

	if len(summary.ProcessedFiles) > 0 {
		b.WriteString("Successful Files:\n")
		b.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(&b, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(&b, "  Output:       %s\n", pf.OutputFile)
			fmt.Fprintf(&b, "  Card:         %s\n", pf.Card)
			fmt.Fprintf(&b, "  Records:      %d\n", pf.Records)
			fmt.Fprintf(&b, "  Cards:        %d\n", pf.Cards)
			fmt.Fprintf(&b, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		b.WriteString("Failed Files:\n")
		b.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(&b, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(&b, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	b.WriteString("================================================================================\n" +
		"End of Summary\n")

	return b.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
