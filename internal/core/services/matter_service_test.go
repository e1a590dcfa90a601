package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
	"github.com/lexfile/matter_docs_app/internal/core/services"
	"github.com/lexfile/matter_docs_app/internal/dto"
)

var fixedTime = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

// fixedClock pins Now so emitted records carry predictable timestamps.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// --- Mock MatterRepository ---
type MockMatterRepository struct {
	mock.Mock
}

func (m *MockMatterRepository) FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockMatterRepository) ListMatters(ctx context.Context, includeArchived, includeDeleted bool) ([]domain.Matter, error) {
	args := m.Called(ctx, includeArchived, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Matter), args.Error(1)
}

func (m *MockMatterRepository) MatterDescriptionExists(ctx context.Context, description string) (bool, error) {
	args := m.Called(ctx, description)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatterRepository) CreateMatter(ctx context.Context, matter domain.Matter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}

func (m *MockMatterRepository) SaveMatter(ctx context.Context, matter domain.Matter, newRecords []domain.ActivityRecord) error {
	args := m.Called(ctx, matter, newRecords)
	return args.Error(0)
}

func (m *MockMatterRepository) AppendTransferRecords(ctx context.Context, matterID string, records []domain.TransferRecord) error {
	args := m.Called(ctx, matterID, records)
	return args.Error(0)
}

// --- Mock DocumentReader ---
type MockDocumentReader struct {
	mock.Mock
}

func (m *MockDocumentReader) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentReader) ListDocumentsByMatter(ctx context.Context, matterID string, includeDeleted bool) ([]domain.Document, error) {
	args := m.Called(ctx, matterID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

// --- Mock UniquenessChecker ---
type MockUniquenessChecker struct {
	mock.Mock
}

func (m *MockUniquenessChecker) MatterDescriptionExists(ctx context.Context, description string) (bool, error) {
	args := m.Called(ctx, description)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type MatterServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockMatterRepository
	mockDocs       *MockDocumentReader
	mockUniqueness *MockUniquenessChecker
	service        portssvc.MatterSvcFacade
}

func (suite *MatterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMatterRepository)
	suite.mockDocs = new(MockDocumentReader)
	suite.mockUniqueness = new(MockUniquenessChecker)
	suite.service = services.NewMatterService(
		suite.mockRepo,
		suite.mockDocs,
		suite.mockUniqueness,
		fixedClock{now: fixedTime},
		[]string{"admin", "system"},
	)
}

func (suite *MatterServiceTestSuite) newStoredMatter(description string) *domain.Matter {
	matter, err := domain.NewMatter(description, "creator-1", fixedTime.Add(-time.Hour), nil)
	suite.Require().NoError(err)
	return matter
}

// --- Test Cases ---

func (suite *MatterServiceTestSuite) TestCreateMatter_Success() {
	ctx := context.Background()
	req := dto.CreateMatterRequest{Description: "Smith Trust"}

	suite.mockUniqueness.On("MatterDescriptionExists", ctx, req.Description).Return(false, nil).Once()
	suite.mockRepo.On("CreateMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return m.Description == "Smith Trust" && !m.IsArchived && !m.IsDeleted && len(m.Activities) == 1
	})).Return(nil).Once()

	matter, err := suite.service.CreateMatter(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(matter)
	suite.Equal("Smith Trust", matter.Description)
	suite.Equal("user-1", matter.CreatedBy)
	suite.Equal(fixedTime, matter.CreatedAt)
	suite.Require().Len(matter.Activities, 1)
	suite.Equal(matter.MatterID, matter.Activities[0].SubjectID)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUniqueness.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestCreateMatter_DescriptionTaken() {
	ctx := context.Background()
	req := dto.CreateMatterRequest{Description: "Smith Trust"}

	suite.mockUniqueness.On("MatterDescriptionExists", ctx, req.Description).Return(true, nil).Once()

	matter, err := suite.service.CreateMatter(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, services.ErrDescriptionTaken)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateMatter", mock.Anything, mock.Anything)
}

func (suite *MatterServiceTestSuite) TestCreateMatter_TooShort() {
	ctx := context.Background()

	matter, err := suite.service.CreateMatter(ctx, dto.CreateMatterRequest{Description: "A"}, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUniqueness.AssertNotCalled(suite.T(), "MatterDescriptionExists", mock.Anything, mock.Anything)
}

func (suite *MatterServiceTestSuite) TestCreateMatter_ReservedWord() {
	ctx := context.Background()
	req := dto.CreateMatterRequest{Description: "system backup"}

	suite.mockUniqueness.On("MatterDescriptionExists", ctx, req.Description).Return(false, nil).Once()

	matter, err := suite.service.CreateMatter(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateMatter", mock.Anything, mock.Anything)
}

func (suite *MatterServiceTestSuite) TestUpdateMatterDescription_SkipsUniquenessWhenUnchanged() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	req := dto.UpdateMatterDescriptionRequest{Description: "Smith Trust"}

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.AnythingOfType("domain.Matter"), mock.Anything).Return(nil).Once()

	matter, err := suite.service.UpdateMatterDescription(ctx, stored.MatterID, req, "user-2")

	suite.Require().NoError(err)
	suite.Equal("Smith Trust", matter.Description)
	suite.mockUniqueness.AssertNotCalled(suite.T(), "MatterDescriptionExists", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestUpdateMatterDescription_ChecksUniquenessWhenChanged() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	req := dto.UpdateMatterDescriptionRequest{Description: "Jones Estate"}

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockUniqueness.On("MatterDescriptionExists", ctx, req.Description).Return(false, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		// No standard activity records a description change.
		return m.Description == "Jones Estate" && len(m.Activities) == 1
	}), mock.Anything).Return(nil).Once()

	matter, err := suite.service.UpdateMatterDescription(ctx, stored.MatterID, req, "user-2")

	suite.Require().NoError(err)
	suite.Equal("Jones Estate", matter.Description)
	suite.Equal("user-2", matter.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUniqueness.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestArchiveMatter_Success() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return m.IsArchived && len(m.Activities) == 2
	}), mock.MatchedBy(func(records []domain.ActivityRecord) bool {
		return len(records) == 1 && records[0].UserID == "user-1" && records[0].CreatedAt.Equal(fixedTime)
	})).Return(nil).Once()

	matter, err := suite.service.ArchiveMatter(ctx, stored.MatterID, "user-1")

	suite.Require().NoError(err)
	suite.True(matter.IsArchived)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestArchiveMatter_AlreadyArchived() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	_, err := stored.Archive("creator-1", fixedTime.Add(-time.Minute))
	suite.Require().NoError(err)

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()

	matter, err := suite.service.ArchiveMatter(ctx, stored.MatterID, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, domain.ErrMatterAlreadyArchived)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMatter", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MatterServiceTestSuite) TestUnarchiveMatter_Success() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	_, err := stored.Archive("creator-1", fixedTime.Add(-time.Minute))
	suite.Require().NoError(err)

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return !m.IsArchived
	}), mock.Anything).Return(nil).Once()

	matter, err := suite.service.UnarchiveMatter(ctx, stored.MatterID, "user-1")

	suite.Require().NoError(err)
	suite.False(matter.IsArchived)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestDeleteMatter_BlockedByActiveDocuments() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	active := domain.Document{DocumentID: "doc-1", MatterID: stored.MatterID}

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockDocs.On("ListDocumentsByMatter", ctx, stored.MatterID, false).Return([]domain.Document{active}, nil).Once()

	matter, err := suite.service.DeleteMatter(ctx, stored.MatterID, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, domain.ErrMatterHasActiveDocuments)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMatter", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MatterServiceTestSuite) TestDeleteMatter_Success() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockDocs.On("ListDocumentsByMatter", ctx, stored.MatterID, false).Return([]domain.Document{}, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return m.IsDeleted && m.DeletedBy != nil && *m.DeletedBy == "user-1"
	}), mock.Anything).Return(nil).Once()

	matter, err := suite.service.DeleteMatter(ctx, stored.MatterID, "user-1")

	suite.Require().NoError(err)
	suite.True(matter.IsDeleted)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockDocs.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestRestoreMatter_Success() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	_, err := stored.Delete("creator-1", fixedTime.Add(-time.Minute))
	suite.Require().NoError(err)

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return !m.IsDeleted && m.DeletedBy == nil && m.DeletedAt == nil
	}), mock.Anything).Return(nil).Once()

	matter, err := suite.service.RestoreMatter(ctx, stored.MatterID, "user-2")

	suite.Require().NoError(err)
	suite.False(matter.IsDeleted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestArchiveMatter_VersionConflict() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrVersionConflict).Once()

	matter, err := suite.service.ArchiveMatter(ctx, stored.MatterID, "user-1")

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, apperrors.ErrVersionConflict)
	suite.Equal("VERSION_CONFLICT", apperrors.Code(err))
}

func (suite *MatterServiceTestSuite) TestGetMatterByID_NotFound() {
	ctx := context.Background()
	matterID := "missing"

	suite.mockRepo.On("FindMatterByID", ctx, matterID).Return(nil, apperrors.ErrNotFound).Once()

	matter, err := suite.service.GetMatterByID(ctx, matterID)

	suite.Require().Error(err)
	suite.Nil(matter)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MatterServiceTestSuite) TestListMatters_PassesFlags() {
	ctx := context.Background()
	expected := []domain.Matter{{MatterID: "m-1"}, {MatterID: "m-2"}}

	suite.mockRepo.On("ListMatters", ctx, true, false).Return(expected, nil).Once()

	matters, err := suite.service.ListMatters(ctx, dto.ListMattersParams{IncludeArchived: true})

	suite.Require().NoError(err)
	suite.Equal(expected, matters)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestRecordMatterView_AppendsRecordOnly() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	lastUpdated := stored.LastUpdatedAt

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()
	suite.mockRepo.On("SaveMatter", ctx, mock.MatchedBy(func(m domain.Matter) bool {
		return len(m.Activities) == 2 && m.LastUpdatedAt.Equal(lastUpdated)
	}), mock.Anything).Return(nil).Once()

	err := suite.service.RecordMatterView(ctx, stored.MatterID, "user-3")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MatterServiceTestSuite) TestListMatterActivity_SortedChronologically() {
	ctx := context.Background()
	stored := suite.newStoredMatter("Smith Trust")
	_, err := stored.Archive("user-1", fixedTime.Add(time.Hour))
	suite.Require().NoError(err)
	_, err = stored.Unarchive("user-1", fixedTime.Add(2*time.Hour))
	suite.Require().NoError(err)
	// Scramble so the sort does real work.
	stored.Activities[0], stored.Activities[2] = stored.Activities[2], stored.Activities[0]

	suite.mockRepo.On("FindMatterByID", ctx, stored.MatterID).Return(stored, nil).Once()

	resp, err := suite.service.ListMatterActivity(ctx, stored.MatterID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Activities, 3)
	for i := 1; i < len(resp.Activities); i++ {
		suite.False(resp.Activities[i].CreatedAt.Before(resp.Activities[i-1].CreatedAt))
	}
	suite.Empty(resp.TransfersFrom)
	suite.Empty(resp.TransfersTo)
}

// --- Run Suite ---
func TestMatterService(t *testing.T) {
	suite.Run(t, new(MatterServiceTestSuite))
}
