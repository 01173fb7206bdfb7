package xmlvalidate

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/agentflare-ai/go-xmldom"
)

// LoadText reads a file as UTF-8 text. A missing or unreadable file is
// an IOError.
func LoadText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return data, nil
}

// ParseDocument parses XML text into a document tree. Malformed markup
// is a ParseError; path is only used for the error message.
func ParseDocument(data []byte, path string) (xmldom.Document, error) {
	decoder := xmldom.NewDecoderFromBytes(data)
	doc, err := decoder.Decode()
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return doc, nil
}

// LoadDocument reads and parses one XML file.
func LoadDocument(path string) (xmldom.Document, error) {
	data, err := LoadText(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data, path)
}

// ListFiles enumerates the .xml and .xsd files directly inside a
// directory, sorted by name. An unreadable directory is an IOError.
func ListFiles(dir string) (xmlFiles, xsdFiles []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &IOError{Path: dir, Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		switch filepath.Ext(entry.Name()) {
		case ".xml":
			xmlFiles = append(xmlFiles, full)
		case ".xsd":
			xsdFiles = append(xsdFiles, full)
		}
	}
	sort.Strings(xmlFiles)
	sort.Strings(xsdFiles)
	return xmlFiles, xsdFiles, nil
}
