package etl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BartekS5/personbatch/pkg/models"
)

const commentPrefix = "#"

// FlatFileReader reads delimited name records from a text file, one record
// per line, with tokens mapped positionally onto Names.
type FlatFileReader struct {
	Path      string
	Delimiter string
	Names     []string

	file *os.File
	buf  *bufio.Reader
	line int
}

func NewFlatFileReader(path, delimiter string, names ...string) *FlatFileReader {
	if len(names) == 0 {
		names = models.DefaultFieldNames
	}
	return &FlatFileReader{Path: path, Delimiter: delimiter, Names: names}
}

func (r *FlatFileReader) Open(ctx context.Context) error {
	if r.Delimiter == "" {
		return errors.New("reader delimiter must not be empty")
	}
	if err := ValidateFieldNames(r.Names); err != nil {
		return err
	}

	f, err := os.Open(r.Path)
	if err != nil {
		return &ResourceError{Path: r.Path, Err: err}
	}
	r.file = f
	r.buf = bufio.NewReader(f)
	r.line = 0
	return nil
}

// Read returns the next record, skipping comment lines. Lines have no
// length limit; a final line without a trailing newline is still read.
func (r *FlatFileReader) Read(_ context.Context) (models.Person, error) {
	if r.buf == nil {
		return models.Person{}, fmt.Errorf("reader for '%s' is not open", r.Path)
	}

	for {
		raw, err := r.buf.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return models.Person{}, &ResourceError{Path: r.Path, Err: err}
		}
		if raw == "" && err != nil {
			return models.Person{}, io.EOF
		}
		r.line++

		text := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if strings.HasPrefix(text, commentPrefix) {
			continue
		}

		tokens := strings.Split(text, r.Delimiter)
		if len(tokens) != len(r.Names) {
			return models.Person{}, &FormatError{
				Path: r.Path,
				Line: r.line,
				Text: text,
				Want: len(r.Names),
				Got:  len(tokens),
			}
		}
		return r.mapTokens(tokens), nil
	}
}

func (r *FlatFileReader) mapTokens(tokens []string) models.Person {
	var p models.Person
	for i, name := range r.Names {
		switch name {
		case models.FieldFirstName:
			p.FirstName = tokens[i]
		case models.FieldLastName:
			p.LastName = tokens[i]
		}
	}
	return p
}

// Line is the number of the last line consumed.
func (r *FlatFileReader) Line() int { return r.line }

func (r *FlatFileReader) Close() error {
	r.buf = nil
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
