package library

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/boltdb/bolt"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

var ErrNotCached = errors.New("not cached")

var (
	componentsBucket = []byte("components")
	modelsBucket     = []byte("models")
)

/*
	Record is one cached component: the catalog fields shown in search
	results plus the full EasyEDA document, kept so re-imports and
	format-version switches work offline.
*/
type Record struct {
	LCSC         string
	Title        string
	MFRPart      string
	Package      string
	Manufacturer string
	Description  string
	Datasheet    string
	Fetched      time.Time

	Component easyeda.ComponentResult
}

/*
	Only the catalog fields go into the search index; indexing the full
	document would index thousands of shape strings per part.
*/
type indexDocument struct {
	LCSC         string
	Title        string
	MFRPart      string
	Package      string
	Manufacturer string
	Description  string
}

/*
	Library is the on-disk component cache: a bolt database holding gob
	records and fetched meshes, with a bleve index alongside it for
	full-text search.
*/
type Library struct {
	root  string
	db    *bolt.DB
	index bleve.Index
}

func exists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	} else if os.IsNotExist(err) {
		return false
	}

	return true
}

/*
	return an encoded object as bytes
*/
func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	err := gob.NewEncoder(b).Encode(v)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

/*
	return a decoded object from bytes
*/
func unmarshal(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	return gob.NewDecoder(b).Decode(v)
}

/*
	Create or open the library under root. The folder is created when
	missing.
*/
func NewLibrary(root string) (*Library, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	db, err := bolt.Open(filepath.Join(root, "components.db"), 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("opening component cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(componentsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(modelsBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing component cache: %w", err)
	}

	var index bleve.Index
	ipath := filepath.Join(root, "components.index")
	if exists(ipath) {
		index, err = bleve.Open(ipath)
	} else {
		index, err = bleve.New(ipath, bleve.NewIndexMapping())
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening search index: %w", err)
	}

	return &Library{
		root:  root,
		db:    db,
		index: index,
	}, nil
}

func (l *Library) Close() error {
	if err := l.index.Close(); err != nil {
		l.db.Close()
		return err
	}

	return l.db.Close()
}

/*
	Put stores a component record and indexes its catalog fields.
*/
func (l *Library) Put(record *Record) error {
	data, err := marshal(record)
	if err != nil {
		return err
	}

	err = l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(componentsBucket).Put([]byte(record.LCSC), data)
	})
	if err != nil {
		return err
	}

	return l.index.Index(record.LCSC, indexDocument{
		LCSC:         record.LCSC,
		Title:        record.Title,
		MFRPart:      record.MFRPart,
		Package:      record.Package,
		Manufacturer: record.Manufacturer,
		Description:  record.Description,
	})
}

func (l *Library) Get(lcsc string) (*Record, error) {
	var data []byte
	l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(componentsBucket).Get([]byte(lcsc)); v != nil {
			data = append([]byte{}, v...)
		}

		return nil
	})

	if data == nil {
		return nil, ErrNotCached
	}

	record := &Record{}
	if err := unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("decoding cached %s: %w", lcsc, err)
	}

	return record, nil
}

func (l *Library) Has(lcsc string) bool {
	found := false
	l.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(componentsBucket).Get([]byte(lcsc)) != nil

		return nil
	})

	return found
}

/*
	PutModel caches a fetched 3D mesh under its uuid.
*/
func (l *Library) PutModel(uuid string, data []byte) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(modelsBucket).Put([]byte(uuid), data)
	})
}

func (l *Library) Model(uuid string) ([]byte, error) {
	var data []byte
	l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(modelsBucket).Get([]byte(uuid)); v != nil {
			data = append([]byte{}, v...)
		}

		return nil
	})

	if data == nil {
		return nil, ErrNotCached
	}

	return data, nil
}

/*
	Search runs a full-text query over the cached catalog fields and
	returns the matching records, best first.
*/
func (l *Library) Search(text string, limit int) ([]*Record, error) {
	request := bleve.NewSearchRequest(bleve.NewQueryStringQuery(text))
	if limit > 0 {
		request.Size = limit
	}

	result, err := l.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", text, err)
	}

	records := []*Record{}
	for _, hit := range result.Hits {
		record, err := l.Get(hit.ID)
		if err != nil {
			// index knows an id the store lost, skip it
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

/*
	Each visits every cached component in key order.
*/
func (l *Library) Each(visit func(*Record) error) error {
	return l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(componentsBucket).ForEach(func(k, v []byte) error {
			record := &Record{}
			if err := unmarshal(v, record); err != nil {
				return fmt.Errorf("decoding cached %s: %w", string(k), err)
			}

			return visit(record)
		})
	})
}
