package types

// MaxNameLen is the longest file name a directory entry can hold; names are
// stored NUL-terminated in a 64-byte field.
const MaxNameLen = 63

type DirEntry struct {
	Name  string
	InUse bool
	Ino   Ino

	// DeletedSeq orders deleted entries so that undelete can find the most
	// recently deleted one. Zero for entries that were never deleted.
	DeletedSeq uint32
}

// Deleted reports whether the entry once held a file that has since been
// deleted.
func (entry *DirEntry) Deleted() bool {
	return !entry.InUse && entry.Ino != InoNil
}
