package svgpath

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/epicycle/curve"
	"golang.org/x/net/html/charset"
)

var (
	// ErrNoDocument indicates an SVG document which cannot be opened or read.
	ErrNoDocument = errors.New("cannot read SVG document")
	// ErrNoPathData indicates an SVG document without any <path d="...">.
	ErrNoPathData = errors.New("SVG document contains no path data")
)

// Document scans an SVG document and returns the path data of its last
// <path> element carrying a 'd' attribute. Later paths override earlier
// ones. No other SVG elements are interpreted.
func Document(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel
	var data string
	var found bool
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			tracer().Errorf("SVG parsing error: %v", err)
			return "", fmt.Errorf("%w: %v", ErrNoDocument, err)
		}
		se, ok := t.(xml.StartElement)
		if !ok || se.Name.Local != "path" {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Local == "d" {
				data, found = attr.Value, true
			}
		}
	}
	if !found {
		return "", ErrNoPathData
	}
	return data, nil
}

// Read compiles the path data of an SVG document, see Document.
func Read(r io.Reader, opts ...Option) (*curve.Composite, error) {
	d, err := Document(r)
	if err != nil {
		return nil, err
	}
	return Compile(d, opts...)
}

// Open reads an SVG file and compiles its path data, see Document.
func Open(filename string, opts ...Option) (*curve.Composite, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNoDocument, filename)
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	defer fp.Close()
	tracer().Infof("reading path data from %s", filename)
	return Read(bufio.NewReader(fp), opts...)
}
