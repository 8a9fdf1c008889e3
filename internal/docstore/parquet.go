// Package docstore loads the per-shard document store artifact produced by
// the ingestion pipeline. Each shard directory holds a docstore.parquet file
// with the raw document text and the metadata projected into responses; the
// vector index in Redis only stores ids, vectors and filterable tags.
package docstore

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// Row is the parquet schema of one document in a shard docstore.
type Row struct {
	BatimentGroupeID    string   `parquet:"batiment_groupe_id"`
	Text                string   `parquet:"text"`
	CodeDepartement     string   `parquet:"code_departement_insee"`
	LibelleCommune      string   `parquet:"libelle_commune_insee"`
	UsagePrincipal      string   `parquet:"usage_principal"`
	ClasseBilanDPE      string   `parquet:"classe_bilan_dpe"`
	IsPassoireThermique int32    `parquet:"is_passoire_thermique"`
	STotaleBat          *float64 `parquet:"s_totale_bat,optional"`
}

// Document is one loaded entry: the raw text plus the metadata subset
// surfaced in answers.
type Document struct {
	Text     string
	Metadata domain.DocumentMetadata
}

// Store is an in-memory view of one shard's docstore, keyed by building
// group id. Immutable after Open.
type Store struct {
	docs map[string]Document
}

// Open reads a docstore.parquet file into memory.
func Open(path string) (*Store, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("read docstore %s: %w", path, err)
	}
	return newStore(rows), nil
}

// NewFromRows builds a Store directly from rows (test and tooling use).
func NewFromRows(rows []Row) *Store {
	return newStore(rows)
}

func newStore(rows []Row) *Store {
	docs := make(map[string]Document, len(rows))
	for _, r := range rows {
		docs[r.BatimentGroupeID] = Document{
			Text: r.Text,
			Metadata: domain.DocumentMetadata{
				CodeDepartementINSEE: r.CodeDepartement,
				LibelleCommuneINSEE:  r.LibelleCommune,
				UsagePrincipal:       r.UsagePrincipal,
				ClasseBilanDPE:       r.ClasseBilanDPE,
				IsPassoireThermique:  int(r.IsPassoireThermique),
				SurfaceTotale:        r.STotaleBat,
			},
		}
	}
	return &Store{docs: docs}
}

// Get returns the document for the given building group id.
func (s *Store) Get(id string) (Document, bool) {
	d, ok := s.docs[id]
	return d, ok
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}
