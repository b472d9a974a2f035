package parser

import (
	"io"

	"github.com/klauspost/compress/zip"
)

// Entry names inside an .xmind archive.
const (
	ContentJSON = "content.json"
	ContentXML  = "content.xml"
)

// Archive is an opened .xmind container.
type Archive struct {
	r      *zip.Reader
	closer io.Closer
}

// OpenArchive opens the .xmind file at path.
func OpenArchive(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &Archive{r: &rc.Reader, closer: rc}, nil
}

// NewArchive reads an .xmind container of the given size from r.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &Archive{r: zr}, nil
}

// Close releases the underlying file, if any.
func (a *Archive) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Has reports whether the archive holds an entry called name.
func (a *Archive) Has(name string) bool {
	return a.find(name) != nil
}

// ReadFile returns the content of the entry called name, or nil if there is none.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	f := a.find(name)
	if f == nil {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Names lists the archive entries in directory order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.r.File))
	for _, f := range a.r.File {
		names = append(names, f.Name)
	}
	return names
}

func (a *Archive) find(name string) *zip.File {
	if a == nil || a.r == nil {
		return nil
	}
	for _, f := range a.r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
