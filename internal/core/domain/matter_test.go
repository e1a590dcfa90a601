package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

var testTime = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func activityName(t *testing.T, record domain.ActivityRecord) string {
	t.Helper()
	a, ok := domain.DefaultActivityCatalog().ActivityByID(record.ActivityID)
	require.True(t, ok, "record references unknown activity %s", record.ActivityID)
	return a.Name
}

func TestValidateMatterDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{name: "valid", description: "Smith Trust", wantErr: false},
		{name: "minimum length", description: "AB", wantErr: false},
		{name: "too short", description: "A", wantErr: true},
		{name: "too short after trim", description: "  A  ", wantErr: true},
		{name: "too long", description: strings.Repeat("x", 129), wantErr: true},
		{name: "maximum length", description: strings.Repeat("x", 128), wantErr: false},
		{name: "reserved word", description: "system backup", wantErr: true},
		{name: "reserved word case insensitive", description: "The ADMIN files", wantErr: true},
		{name: "reserved word as substring is fine", description: "administration records", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateMatterDescription(tt.description, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMatter(t *testing.T) {
	m, err := domain.NewMatter("  Smith Trust  ", "user-1", testTime, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, m.MatterID)
	assert.Equal(t, "Smith Trust", m.Description)
	assert.False(t, m.IsArchived)
	assert.False(t, m.IsDeleted)
	assert.Equal(t, "user-1", m.CreatedBy)
	assert.Equal(t, testTime, m.CreatedAt)

	require.Len(t, m.Activities, 1)
	assert.Equal(t, "CREATED", activityName(t, m.Activities[0]))
	assert.Equal(t, m.MatterID, m.Activities[0].SubjectID)
	assert.Equal(t, "user-1", m.Activities[0].UserID)
}

func TestMatter_ArchiveUnarchive(t *testing.T) {
	m, err := domain.NewMatter("Estate of Jones", "user-1", testTime, nil)
	require.NoError(t, err)

	rec, err := m.Archive("user-2", testTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, m.IsArchived)
	assert.Equal(t, "ARCHIVED", activityName(t, *rec))
	assert.Equal(t, "user-2", m.LastUpdatedBy)

	// Second archive fails and leaves state unchanged.
	before := *m
	recordCount := len(m.Activities)
	_, err = m.Archive("user-2", testTime.Add(2*time.Minute))
	require.ErrorIs(t, err, domain.ErrMatterAlreadyArchived)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, before.LastUpdatedAt, m.LastUpdatedAt)
	assert.Len(t, m.Activities, recordCount)

	rec, err = m.Unarchive("user-2", testTime.Add(3*time.Minute))
	require.NoError(t, err)
	assert.False(t, m.IsArchived)
	assert.Equal(t, "UNARCHIVED", activityName(t, *rec))

	_, err = m.Unarchive("user-2", testTime.Add(4*time.Minute))
	assert.ErrorIs(t, err, domain.ErrMatterNotArchived)
}

func TestMatter_DeleteRequiresNoActiveDocuments(t *testing.T) {
	m, err := domain.NewMatter("Acme Litigation", "user-1", testTime, nil)
	require.NoError(t, err)

	active := domain.Document{DocumentID: "doc-1", MatterID: m.MatterID}
	deleted := domain.Document{DocumentID: "doc-2", MatterID: m.MatterID}
	deleted.IsDeleted = true

	m.Documents = []domain.Document{active, deleted}
	_, err = m.Delete("user-1", testTime.Add(time.Minute))
	require.ErrorIs(t, err, domain.ErrMatterHasActiveDocuments)
	assert.False(t, m.IsDeleted)
	assert.Len(t, m.Activities, 1)

	m.Documents = []domain.Document{deleted}
	rec, err := m.Delete("user-1", testTime.Add(2*time.Minute))
	require.NoError(t, err)
	assert.True(t, m.IsDeleted)
	require.NotNil(t, m.DeletedBy)
	assert.Equal(t, "user-1", *m.DeletedBy)
	require.NotNil(t, m.DeletedAt)
	assert.Equal(t, "DELETED", activityName(t, *rec))

	_, err = m.Delete("user-1", testTime.Add(3*time.Minute))
	assert.ErrorIs(t, err, domain.ErrMatterAlreadyDeleted)
}

func TestMatter_DeletedBlocksMutations(t *testing.T) {
	m, err := domain.NewMatter("Dormant Matter", "user-1", testTime, nil)
	require.NoError(t, err)
	_, err = m.Delete("user-1", testTime)
	require.NoError(t, err)

	_, err = m.Archive("user-1", testTime)
	assert.ErrorIs(t, err, domain.ErrMatterAlreadyDeleted)
	_, err = m.Unarchive("user-1", testTime)
	assert.ErrorIs(t, err, domain.ErrMatterAlreadyDeleted)
	err = m.UpdateDescription("New Description", "user-1", testTime, nil)
	assert.ErrorIs(t, err, domain.ErrMatterAlreadyDeleted)
	_, err = m.RecordView("user-1", testTime)
	assert.ErrorIs(t, err, domain.ErrMatterAlreadyDeleted)
}

func TestMatter_Restore(t *testing.T) {
	m, err := domain.NewMatter("Restored Matter", "user-1", testTime, nil)
	require.NoError(t, err)

	_, err = m.Restore("user-1", testTime)
	assert.ErrorIs(t, err, domain.ErrMatterNotDeleted)

	_, err = m.Delete("user-1", testTime.Add(time.Minute))
	require.NoError(t, err)

	rec, err := m.Restore("user-2", testTime.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, m.IsDeleted)
	assert.Nil(t, m.DeletedBy)
	assert.Nil(t, m.DeletedAt)
	assert.Equal(t, "RESTORED", activityName(t, *rec))
}

func TestMatter_UpdateDescription(t *testing.T) {
	m, err := domain.NewMatter("Original Name", "user-1", testTime, nil)
	require.NoError(t, err)

	err = m.UpdateDescription("Renamed Matter", "user-2", testTime.Add(time.Minute), nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Matter", m.Description)
	assert.Equal(t, "user-2", m.LastUpdatedBy)
	// Description changes record no standard activity.
	assert.Len(t, m.Activities, 1)

	err = m.UpdateDescription("x", "user-2", testTime, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Renamed Matter", m.Description)
}

func TestMatter_RecordView(t *testing.T) {
	m, err := domain.NewMatter("Viewed Matter", "user-1", testTime, nil)
	require.NoError(t, err)

	lastUpdated := m.LastUpdatedAt
	rec, err := m.RecordView("user-3", testTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "VIEWED", activityName(t, *rec))
	// Viewing is not a mutation.
	assert.Equal(t, lastUpdated, m.LastUpdatedAt)
}
