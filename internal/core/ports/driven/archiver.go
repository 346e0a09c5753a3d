package driven

// ArchiveEntry is one named file inside an export bundle.
type ArchiveEntry struct {
	// Name is the entry's path within the archive.
	Name string

	// Data is the entry's content.
	Data []byte
}

// Archiver creates and reads export bundles (zip format).
type Archiver interface {
	// Create writes a new archive containing the given entries and
	// returns the SHA-256 hex digest of the finished archive file.
	Create(path string, entries []ArchiveEntry) (hash string, err error)

	// ReadEntry extracts one entry from an existing archive.
	// Returns domain.ErrNotFound when the archive file is missing and
	// domain.ErrCorruptArchive when the entry is absent.
	ReadEntry(path, name string) ([]byte, error)
}
