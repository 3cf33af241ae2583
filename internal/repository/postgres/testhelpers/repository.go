package testhelpers

import (
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/repository/postgres"
)

// NewDocumentRepository creates a document repository over the test database
func (tdb *TestDB) NewDocumentRepository() repository.DocumentRepository {
	return postgres.NewDocumentRepository(tdb.PG)
}

// NewReferenceRepository creates a reference repository over the test database
func (tdb *TestDB) NewReferenceRepository() repository.ReferenceRepository {
	return postgres.NewReferenceRepository(tdb.PG)
}
