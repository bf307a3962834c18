package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/repository"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) CountMutations(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CreateBankDetail(ctx context.Context, detail *model.DirectBankTransfer) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockAccountRepository) FindBankDetail(ctx context.Context, accountID uuid.UUID) (*model.DirectBankTransfer, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DirectBankTransfer), args.Error(1)
}

func (m *MockAccountRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.AccountRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

func TestCreateAccount(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	svc := NewAccountService(mockRepo, nil)
	ctx := context.Background()

	account := &model.Account{
		Name:          "Operations",
		AccountName:   "PT Operations",
		AccountNumber: "123-456-789",
		Balance:       decimal.NewFromInt(500),
	}
	bank := &model.DirectBankTransfer{BankName: "Bank Mandiri"}

	mockRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
	mockRepo.On("Create", ctx, account).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Account).ID = uuid.New()
	})
	mockRepo.On("CreateBankDetail", ctx, bank).Return(nil)

	err := svc.CreateAccount(ctx, account, bank)

	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero(), "accounts open with a zero balance")
	assert.Equal(t, model.AccountKindDirectBankTransfer, account.Kind)
	assert.Equal(t, account.ID, bank.AccountID)
	mockRepo.AssertExpectations(t)
}

func TestGetAccount_NotFound(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	svc := NewAccountService(mockRepo, nil)
	ctx := context.Background()
	id := uuid.New()

	mockRepo.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

	account, err := svc.GetAccount(ctx, id)

	assert.Nil(t, account)
	assert.Equal(t, errors.ErrAccountNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestGetBalance(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	svc := NewAccountService(mockRepo, nil)
	ctx := context.Background()
	id := uuid.New()

	mockRepo.On("FindByID", ctx, id).
		Return(&model.Account{ID: id, Balance: decimal.NewFromInt(40000)}, nil)

	balance, err := svc.GetBalance(ctx, id)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(40000)))
	mockRepo.AssertExpectations(t)
}

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name          string
		mutationCount int64
		expectedError error
	}{
		{
			name:          "account without mutations is deleted",
			mutationCount: 0,
			expectedError: nil,
		},
		{
			name:          "account with mutations is protected",
			mutationCount: 3,
			expectedError: errors.ErrAccountHasMutations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			svc := NewAccountService(mockRepo, nil)
			ctx := context.Background()
			id := uuid.New()

			mockRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
			mockRepo.On("FindByID", ctx, id).Return(&model.Account{ID: id}, nil)
			mockRepo.On("CountMutations", ctx, id).Return(tt.mutationCount, nil)
			if tt.expectedError == nil {
				mockRepo.On("Delete", ctx, id).Return(nil)
			}

			err := svc.DeleteAccount(ctx, id)

			assert.Equal(t, tt.expectedError, err)
			mockRepo.AssertExpectations(t)
			if tt.expectedError != nil {
				mockRepo.AssertNotCalled(t, "Delete", ctx, id)
			}
		})
	}
}

func TestSeedAccounts(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	svc := NewAccountService(mockRepo, nil)
	ctx := context.Background()

	existingID := uuid.New()
	newID := uuid.New()
	existing := &model.Account{ID: existingID, Name: "Old Name", Balance: decimal.NewFromInt(25000)}

	mockRepo.On("FindByID", ctx, existingID).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)
	mockRepo.On("FindByID", ctx, newID).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Account")).Return(nil)

	count, err := svc.SeedAccounts(ctx, []model.Account{
		{ID: existingID, Name: "New Name", AccountName: "A", AccountNumber: "1"},
		{ID: newID, Name: "Fresh", AccountName: "B", AccountNumber: "2"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "New Name", existing.Name)
	assert.True(t, existing.Balance.Equal(decimal.NewFromInt(25000)), "seeding never touches balances")
	mockRepo.AssertExpectations(t)
}
