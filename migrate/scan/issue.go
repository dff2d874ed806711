package scan

// Severity classifies how urgent a migration issue is.
type Severity string

// Severity levels, most urgent first.
const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// Issue is a single migration finding in a project
// file. Line is 1-based; 0 means the issue concerns the
// file or directory as a whole.
type Issue struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

// Report holds the detected framework versions and all
// issues found in a scan.
type Report struct {
	SpringBootVersion     string  `json:"spring_boot_version"`
	SpringModulithVersion string  `json:"spring_modulith_version"`
	TestcontainersVersion string  `json:"testcontainers_version"`
	Issues                []Issue `json:"issues"`
}

// unknownVersion marks a framework the scan could not
// detect in the build file.
const unknownVersion = "Unknown"

// newReport returns a Report with all versions unknown.
func newReport() *Report {
	return &Report{
		SpringBootVersion:     unknownVersion,
		SpringModulithVersion: unknownVersion,
		TestcontainersVersion: unknownVersion,
	}
}

// add appends an issue to the report.
func (r *Report) add(
	category string,
	severity Severity,
	file string,
	line int,
	description string,
	suggestion string,
) {
	r.Issues = append(r.Issues, Issue{
		Category:    category,
		Severity:    severity,
		File:        file,
		Line:        line,
		Description: description,
		Suggestion:  suggestion,
	})
}

// usesModulith reports whether a Spring Modulith
// version was detected.
func (r *Report) usesModulith() bool {
	return r.SpringModulithVersion != unknownVersion
}

// Counts returns the number of issues per severity.
func (r *Report) Counts() (critical, warning, info int) {
	for _, is := range r.Issues {
		switch is.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warning++
		case SeverityInfo:
			info++
		}
	}

	return critical, warning, info
}
