package model

// Document is an imported file (invoice, receipt) with its extracted text.
type Document struct {
	ID      int64
	Content string
	Path    string
	Hash    string // hex SHA-256 of the raw file
}
