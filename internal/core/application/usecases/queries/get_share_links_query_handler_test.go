package queries_test

import (
	"context"
	"testing"
	"time"

	"handoff/internal/adapters/out/postgres/pgtest"
	"handoff/internal/adapters/out/postgres/recipientrepo"
	"handoff/internal/adapters/out/postgres/shipmentrepo"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type GetShareLinksQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	handler       queries.GetShareLinksQueryHandler
	legRepo       *shipmentrepo.GormShipmentLegRepository
	recipientRepo *recipientrepo.GormAlternateRecipientRepository
	fixture       legFixture
}

func (suite *GetShareLinksQueryHandlerTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(),
		&shipmentrepo.ShipmentLegDTO{}, &recipientrepo.AlternateRecipientDTO{})
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.handler = queries.NewGetShareLinksQueryHandler(db)
	suite.legRepo = shipmentrepo.NewGormShipmentLegRepository(db, nopTracker{})
	suite.recipientRepo = recipientrepo.NewGormAlternateRecipientRepository(db, nopTracker{})
}

func (suite *GetShareLinksQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetShareLinksQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipment_legs, alternate_recipients CASCADE").Error)

	suite.fixture = newLegFixture(suite.T())
	suite.Require().NoError(suite.legRepo.Add(context.Background(), suite.fixture.leg))
}

func (suite *GetShareLinksQueryHandlerTestSuite) query(caller ports.Identity, at time.Time) queries.GetShareLinksQuery {
	q, err := queries.NewGetShareLinksQuery(suite.fixture.leg.ID(), caller, at)
	suite.Require().NoError(err)
	return q
}

func (suite *GetShareLinksQueryHandlerTestSuite) TestHandle_NoLinks_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), suite.query(suite.fixture.customer(), queryTime))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetShareLinksQueryHandlerTestSuite) TestHandle_ListsLinksWithEffectiveStatus() {
	ctx := context.Background()
	longLived := suite.fixture.issueLink(suite.T(), 24*time.Hour)
	shortLived := suite.fixture.issueLink(suite.T(), 30*time.Minute)
	revoked := suite.fixture.issueLink(suite.T(), 24*time.Hour)
	suite.Require().NoError(revoked.Revoke(suite.fixture.customerID, "wrong number", queryTime))
	suite.Require().NoError(suite.recipientRepo.Add(ctx, longLived))
	suite.Require().NoError(suite.recipientRepo.Add(ctx, shortLived))
	suite.Require().NoError(suite.recipientRepo.Add(ctx, revoked))

	result, err := suite.handler.Handle(ctx, suite.query(suite.fixture.admin(), queryTime))

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	byToken := make(map[string]queries.GetShareLinksQueryResponse, len(result))
	for _, r := range result {
		byToken[r.Token] = r
	}
	suite.Equal("ACTIVE", byToken[longLived.Token().String()].Status)
	suite.Equal("EXPIRED", byToken[shortLived.Token().String()].Status)
	suite.Equal("REVOKED", byToken[revoked.Token().String()].Status)
	suite.NotNil(byToken[revoked.Token().String()].RevokedAt)
	suite.Equal("Meera", byToken[longLived.Token().String()].RecipientName)
	suite.Equal("SMS", byToken[longLived.Token().String()].ShareMethod)
	suite.True(byToken[longLived.Token().String()].RecipientID.IsEqual(longLived.ID()))
}

func (suite *GetShareLinksQueryHandlerTestSuite) TestHandle_Authorization() {
	ctx := context.Background()
	stranger := suite.fixture.customer()
	stranger.UserID = kernel.NewUUID()
	otherTenant := suite.fixture.admin()
	otherTenant.TenantID = kernel.NewUUID()

	_, err := suite.handler.Handle(ctx, suite.query(suite.fixture.agent(), queryTime))
	suite.ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.handler.Handle(ctx, suite.query(stranger, queryTime))
	suite.ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.handler.Handle(ctx, suite.query(otherTenant, queryTime))
	suite.ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *GetShareLinksQueryHandlerTestSuite) TestHandle_UnknownLeg() {
	q, err := queries.NewGetShareLinksQuery(kernel.NewUUID(), suite.fixture.customer(), queryTime)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), q)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetShareLinksQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShareLinksQueryHandlerTestSuite))
}
