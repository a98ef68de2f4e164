package types

// Metadata keys attached to documents as they move through the pipeline.
const (
	MetaSource     = "source"
	MetaRow        = "row"
	MetaPage       = "page"
	MetaTotalPages = "total_pages"
	MetaStartIndex = "start_index"
)

// Document is the unit of text flowing through the ingestion pipeline.
// Loaders produce one per file, page or CSV row; the chunker splits them
// into smaller documents that inherit the parent metadata.
type Document struct {
	Content  string
	Metadata map[string]string
}

// CloneMetadata returns a copy of the document metadata so chunks can
// add their own keys without mutating the parent.
func (d Document) CloneMetadata() map[string]string {
	cloned := make(map[string]string, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		cloned[k] = v
	}
	return cloned
}
