package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/dto"
	"github.com/lexfile/matter_docs_app/internal/utils/validation"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{
			name:    "valid matter request",
			input:   dto.CreateMatterRequest{Description: "Smith Trust"},
			wantErr: false,
		},
		{
			name:    "missing required field",
			input:   dto.CreateMatterRequest{},
			wantErr: true,
		},
		{
			name:    "below minimum length",
			input:   dto.CreateMatterRequest{Description: "A"},
			wantErr: true,
		},
		{
			name: "transfer into same matter",
			input: dto.TransferRequest{
				DocumentID:     "7d2f64ec-3f52-4f2e-9f3e-6a3c1b2d4e5f",
				SourceMatterID: "6f1f64ec-3f52-4f2e-9f3e-6a3c1b2d4e5f",
				DestMatterID:   "6f1f64ec-3f52-4f2e-9f3e-6a3c1b2d4e5f",
			},
			wantErr: true,
		},
		{
			name: "malformed uuid",
			input: dto.TransferRequest{
				DocumentID:     "not-a-uuid",
				SourceMatterID: "6f1f64ec-3f52-4f2e-9f3e-6a3c1b2d4e5f",
				DestMatterID:   "8a3f64ec-3f52-4f2e-9f3e-6a3c1b2d4e5f",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
