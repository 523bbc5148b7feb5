package pages

// DateFormat is the fixed, non-localized layout for attribute timestamps,
// rendered in the system's local time zone.
const DateFormat = "2006-01-02 15:04:05"

// FileAttributes describes a PDF document: page and byte counters plus the
// optional document-information fields. It is derived fresh per operation
// and never mutated after construction.
type FileAttributes struct {
	PageCount        int     `json:"page_count"`
	SizeBytes        int64   `json:"size_bytes"`
	Title            *string `json:"title,omitempty"`
	Author           *string `json:"author,omitempty"`
	Subject          *string `json:"subject,omitempty"`
	Keywords         *string `json:"keywords,omitempty"`
	CreationDate     *string `json:"creation_date,omitempty"`
	ModificationDate *string `json:"modification_date,omitempty"`
}
