package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cashflow/internal/model"
)

// MockReferenceRepository is a mock implementation of ReferenceRepository.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) CreateWithdraw(ctx context.Context, w *model.Withdraw) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockReferenceRepository) FindWithdraw(ctx context.Context, id uuid.UUID) (*model.Withdraw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Withdraw), args.Error(1)
}

func (m *MockReferenceRepository) MarkWithdrawPaid(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceRepository) CreateDonation(ctx context.Context, d *model.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockReferenceRepository) FindDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockReferenceRepository) MarkDonationPaid(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestReferenceResolver_ResolvesWithdraw(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	resolver := NewReferenceResolver(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	withdraw := &model.Withdraw{ID: id, RequesterName: "Jane"}
	mockRepo.On("FindWithdraw", ctx, id).Return(withdraw, nil)

	got, err := resolver.Resolve(ctx, model.ReferenceTypeWithdraw, id.String())

	require.NoError(t, err)
	assert.Equal(t, withdraw, got)
	mockRepo.AssertExpectations(t)
}

func TestReferenceResolver_ResolvesDonation(t *testing.T) {
	mockRepo := new(MockReferenceRepository)
	resolver := NewReferenceResolver(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	donation := &model.Donation{ID: id, DonorName: "John"}
	mockRepo.On("FindDonation", ctx, id).Return(donation, nil)

	got, err := resolver.Resolve(ctx, model.ReferenceTypeDonation, id.String())

	require.NoError(t, err)
	assert.Equal(t, donation, got)
	mockRepo.AssertExpectations(t)
}

func TestReferenceResolver_MissesResolveToNil(t *testing.T) {
	missingID := uuid.New()

	tests := []struct {
		name     string
		typeTag  string
		objectID string
		setup    func(m *MockReferenceRepository)
	}{
		{
			name:     "unknown type tag",
			typeTag:  "invoice",
			objectID: uuid.New().String(),
			setup:    func(m *MockReferenceRepository) {},
		},
		{
			name:     "malformed object id",
			typeTag:  model.ReferenceTypeWithdraw,
			objectID: "not-a-uuid",
			setup:    func(m *MockReferenceRepository) {},
		},
		{
			name:     "object no longer exists",
			typeTag:  model.ReferenceTypeDonation,
			objectID: missingID.String(),
			setup: func(m *MockReferenceRepository) {
				m.On("FindDonation", mock.Anything, missingID).Return(nil, gorm.ErrRecordNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReferenceRepository)
			tt.setup(mockRepo)
			resolver := NewReferenceResolver(mockRepo)

			got, err := resolver.Resolve(context.Background(), tt.typeTag, tt.objectID)

			assert.NoError(t, err)
			assert.Nil(t, got)
			mockRepo.AssertExpectations(t)
		})
	}
}
