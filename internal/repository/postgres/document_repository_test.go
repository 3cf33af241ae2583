package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/repository/postgres/testhelpers"
)

// DocumentRepositoryTestSuite тестирует хранилище документов на реальной БД
type DocumentRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.DocumentRepository
	ctx    context.Context
}

func (s *DocumentRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.repo = s.testDB.NewDocumentRepository()
}

func (s *DocumentRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *DocumentRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func paris() *domain.Document {
	return &domain.Document{
		ID:        101751119,
		Placetype: domain.PlacetypeLocality,
		Name:      "Paris",
		Names:     map[string][]string{"eng": {"Paris"}, "fra": {"Paris"}},
		Rank:      domain.Rank{Min: 9, Max: 10},
		Geom: domain.Geom{
			Lat:  48.8566,
			Lon:  2.3522,
			BBox: domain.BBox{2.22, 48.81, 2.47, 48.90},
			Area: 0.011,
		},
		Population: 2140526,
		Lineage:    []map[string]int64{{"country_id": 85633147, "region_id": 85683497}},
	}
}

func france() *domain.Document {
	return &domain.Document{
		ID:         85633147,
		Placetype:  domain.PlacetypeCountry,
		Name:       "France",
		Abbr:       "FR",
		Names:      map[string][]string{"eng": {"France"}},
		Rank:       domain.Rank{Min: 18, Max: 19},
		Geom:       domain.Geom{Lat: 46.6, Lon: 2.4, BBox: domain.BBox{-5.14, 41.33, 9.56, 51.09}, Area: 64.2},
		Population: 67000000,
	}
}

func (s *DocumentRepositoryTestSuite) TestPutGet_RoundTrip() {
	doc := paris()
	s.Require().NoError(s.repo.Put(s.ctx, doc))

	got, err := s.repo.Get(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(doc, got)
}

func (s *DocumentRepositoryTestSuite) TestPut_IdempotentAndIndexConsistent() {
	doc := paris()
	s.Require().NoError(s.repo.Put(s.ctx, doc))
	s.Require().NoError(s.repo.Put(s.ctx, doc))

	n, err := s.testDB.CountIndexRows(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *DocumentRepositoryTestSuite) TestPut_UpdateMovesIndexEntry() {
	doc := paris()
	s.Require().NoError(s.repo.Put(s.ctx, doc))

	doc.Geom.BBox = domain.BBox{10, 10, 11, 11}
	s.Require().NoError(s.repo.Put(s.ctx, doc))

	_, err := s.repo.NearestByPoint(s.ctx, 2.3522, 48.8566)
	s.ErrorIs(err, errors.ErrNotFound)

	id, err := s.repo.NearestByPoint(s.ctx, 10.5, 10.5)
	s.Require().NoError(err)
	s.Equal(doc.ID, id)
}

func (s *DocumentRepositoryTestSuite) TestPut_InvalidDocumentLeavesNoRows() {
	doc := paris()
	doc.Geom.BBox = domain.BBox{3, 48, 2, 49}

	err := s.repo.Put(s.ctx, doc)
	s.ErrorIs(err, errors.ErrStorage)
	s.ErrorIs(err, errors.ErrInvalidDocument)

	orphans, err := s.testDB.OrphanCount(s.ctx)
	s.Require().NoError(err)
	s.Zero(orphans)

	_, err = s.repo.Get(s.ctx, doc.ID)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *DocumentRepositoryTestSuite) TestDelete_RemovesBothRows() {
	s.Require().NoError(s.repo.Put(s.ctx, paris()))
	s.Require().NoError(s.repo.Put(s.ctx, france()))
	s.Require().NoError(s.repo.Delete(s.ctx, paris().ID))

	n, err := s.testDB.CountIndexRows(s.ctx, paris().ID)
	s.Require().NoError(err)
	s.Zero(n)

	orphans, err := s.testDB.OrphanCount(s.ctx)
	s.Require().NoError(err)
	s.Zero(orphans)
}

func (s *DocumentRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, 42)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *DocumentRepositoryTestSuite) TestGetMany() {
	s.Require().NoError(s.repo.Put(s.ctx, paris()))
	s.Require().NoError(s.repo.Put(s.ctx, france()))

	empty, err := s.repo.GetMany(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(empty)

	docs, err := s.repo.GetMany(s.ctx, []int64{paris().ID, 999, france().ID})
	s.Require().NoError(err)
	s.Len(docs, 2)
}

func (s *DocumentRepositoryTestSuite) TestGetFiltered_OrderFilterLimit() {
	s.Require().NoError(s.repo.Put(s.ctx, paris()))
	s.Require().NoError(s.repo.Put(s.ctx, france()))
	ids := []int64{paris().ID, france().ID}

	docs, err := s.repo.GetFiltered(s.ctx, ids, repository.FilterOptions{})
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal(france().ID, docs[0].ID)

	docs, err = s.repo.GetFiltered(s.ctx, ids, repository.FilterOptions{
		Placetypes: []domain.Placetype{domain.PlacetypeLocality},
	})
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal(paris().ID, docs[0].ID)

	docs, err = s.repo.GetFiltered(s.ctx, ids, repository.FilterOptions{Limit: 1})
	s.Require().NoError(err)
	s.Len(docs, 1)
}

func (s *DocumentRepositoryTestSuite) TestNearestByPoint_PrefersSmallestBox() {
	s.Require().NoError(s.repo.Put(s.ctx, paris()))
	s.Require().NoError(s.repo.Put(s.ctx, france()))

	id, err := s.repo.NearestByPoint(s.ctx, 2.3522, 48.8566)
	s.Require().NoError(err)
	s.Equal(paris().ID, id)

	_, err = s.repo.NearestByPoint(s.ctx, 151.2, -33.8)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *DocumentRepositoryTestSuite) TestScan_Pages() {
	s.Require().NoError(s.repo.Put(s.ctx, paris()))
	s.Require().NoError(s.repo.Put(s.ctx, france()))

	page, err := s.repo.Scan(s.ctx, 0, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(france().ID, page[0].ID)

	page, err = s.repo.Scan(s.ctx, page[0].ID, 10)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(paris().ID, page[0].ID)
}

func TestDocumentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentRepositoryTestSuite))
}
