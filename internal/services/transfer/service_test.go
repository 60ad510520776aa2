package transfer

import (
	"database/sql"
	"testing"

	"bankcards/internal/cardnumber"
	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockTxRunner struct {
	mock.Mock
}

func (m *MockTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	m.Called()
	return fc(nil)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(card *models.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(id uuid.UUID) (*models.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) GetByIDForUpdate(id uuid.UUID) (*models.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) FindByNumberEncrypted(encrypted string) (*models.Card, error) {
	args := m.Called(encrypted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ExistsByNumberEncrypted(encrypted string) (bool, error) {
	args := m.Called(encrypted)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) Save(card *models.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCardRepository) List(filter repositories.CardFilter, page, size int) ([]models.Card, int64, error) {
	args := m.Called(filter, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepository) WithTx(tx *gorm.DB) repositories.CardRepository {
	return m
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByCard(cardID uuid.UUID, page, size int) ([]models.Transaction, int64, error) {
	args := m.Called(cardID, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) WithTx(tx *gorm.DB) repositories.TransactionRepository {
	return m
}

var testKey = []byte("0123456789abcdef")

const (
	panAlice1 = "4277011111111111"
	panAlice2 = "4277012222222222"
	panBob    = "4277013333333333"
)

func newTestService(t *testing.T) (Service, *MockTxRunner, *MockCardRepository, *MockTransactionRepository, *cardnumber.Codec) {
	t.Helper()
	codec, err := cardnumber.NewCodec(testKey)
	require.NoError(t, err)

	db := new(MockTxRunner)
	cards := new(MockCardRepository)
	transactions := new(MockTransactionRepository)
	svc := NewService(db, cards, transactions, codec, zap.NewNop())
	return svc, db, cards, transactions, codec
}

func mustEncrypt(t *testing.T, codec *cardnumber.Codec, pan string) string {
	t.Helper()
	enc, err := codec.Encrypt(pan)
	require.NoError(t, err)
	return enc
}

func activeCard(owner uuid.UUID, balance string) *models.Card {
	return &models.Card{
		ID:           uuid.New(),
		Status:       models.CardStatusActive,
		Balance:      decimal.RequireFromString(balance),
		CurrencyCode: models.DefaultCurrency,
		UserID:       owner,
	}
}

func expectResolveAndLock(cards *MockCardRepository, codec *cardnumber.Codec, pan string, card *models.Card, t *testing.T) {
	cards.On("FindByNumberEncrypted", mustEncrypt(t, codec, pan)).Return(card, nil)
	cards.On("GetByIDForUpdate", card.ID).Return(card, nil)
}

func TestTransfer_Success(t *testing.T) {
	tests := []struct {
		name        string
		fromBalance string
		amount      string
		wantFrom    string
		wantTo      string
	}{
		{"partial amount", "100.00", "40.50", "59.5", "60.5"},
		{"exact balance drains the card", "100.00", "100.00", "0", "120"},
		{"smallest unit", "0.01", "0.01", "0", "20.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := uuid.New()
			from := activeCard(owner, tt.fromBalance)
			to := activeCard(owner, "20.00")

			svc, db, cards, transactions, codec := newTestService(t)
			db.On("Transaction").Return(nil)
			expectResolveAndLock(cards, codec, panAlice1, from, t)
			expectResolveAndLock(cards, codec, panAlice2, to, t)
			cards.On("Save", from).Return(nil)
			cards.On("Save", to).Return(nil)
			transactions.On("Create", mock.Anything).Return(nil)

			record, err := svc.Transfer(CreateTransferInput{
				FromCardNumber: panAlice1,
				ToCardNumber:   panAlice2,
				Amount:         decimal.RequireFromString(tt.amount),
			}, owner)

			require.NoError(t, err)
			assert.True(t, from.Balance.Equal(decimal.RequireFromString(tt.wantFrom)),
				"from balance = %s", from.Balance)
			assert.True(t, to.Balance.Equal(decimal.RequireFromString(tt.wantTo)),
				"to balance = %s", to.Balance)
			assert.Equal(t, models.TransactionStatusCompleted, record.Status)
			assert.Equal(t, from.ID, record.FromCardID)
			assert.Equal(t, to.ID, record.ToCardID)
			assert.Equal(t, owner, record.CreatedByID)
			assert.NotNil(t, record.ProcessedAt)

			cards.AssertExpectations(t)
			transactions.AssertExpectations(t)
		})
	}
}

func TestTransfer_PreconditionFailures(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name    string
		setup   func(from, to *models.Card)
		subject uuid.UUID
		errMsg  string
	}{
		{
			name:    "subject does not own the source card",
			setup:   func(from, to *models.Card) { from.UserID = stranger; to.UserID = stranger },
			subject: owner,
			errMsg:  "You are not owner of this card",
		},
		{
			name:    "destination belongs to someone else",
			setup:   func(from, to *models.Card) { to.UserID = stranger },
			subject: owner,
			errMsg:  "Transactions only between your own cards allowed",
		},
		{
			name:    "source card blocked",
			setup:   func(from, to *models.Card) { from.Status = models.CardStatusBlocked },
			subject: owner,
			errMsg:  "One of cards isn't active",
		},
		{
			name:    "destination card expired",
			setup:   func(from, to *models.Card) { to.Status = models.CardStatusExpired },
			subject: owner,
			errMsg:  "One of cards isn't active",
		},
		{
			name:    "insufficient balance",
			setup:   func(from, to *models.Card) { from.Balance = decimal.RequireFromString("9.99") },
			subject: owner,
			errMsg:  "Insufficient balance on source card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := activeCard(owner, "50.00")
			to := activeCard(owner, "0.00")
			tt.setup(from, to)

			svc, db, cards, _, codec := newTestService(t)
			db.On("Transaction").Return(nil)
			expectResolveAndLock(cards, codec, panAlice1, from, t)
			expectResolveAndLock(cards, codec, panAlice2, to, t)

			_, err := svc.Transfer(CreateTransferInput{
				FromCardNumber: panAlice1,
				ToCardNumber:   panAlice2,
				Amount:         decimal.RequireFromString("10.00"),
			}, tt.subject)

			require.Error(t, err)
			assert.Equal(t, tt.errMsg, errs.MessageOf(err))
			cards.AssertNotCalled(t, "Save", mock.Anything)
		})
	}
}

func TestTransfer_OwnershipCheckedBeforeStatus(t *testing.T) {
	// A blocked card owned by someone else must report the ownership
	// failure, not the status failure.
	owner := uuid.New()
	from := activeCard(uuid.New(), "50.00")
	from.Status = models.CardStatusBlocked
	to := activeCard(owner, "0.00")

	svc, db, cards, _, codec := newTestService(t)
	db.On("Transaction").Return(nil)
	expectResolveAndLock(cards, codec, panBob, from, t)
	expectResolveAndLock(cards, codec, panAlice2, to, t)

	_, err := svc.Transfer(CreateTransferInput{
		FromCardNumber: panBob,
		ToCardNumber:   panAlice2,
		Amount:         decimal.RequireFromString("10.00"),
	}, owner)

	require.Error(t, err)
	assert.Equal(t, "You are not owner of this card", errs.MessageOf(err))
}

func TestTransfer_UnknownCardNumber(t *testing.T) {
	owner := uuid.New()
	svc, db, cards, _, codec := newTestService(t)
	db.On("Transaction").Return(nil)
	cards.On("FindByNumberEncrypted", mustEncrypt(t, codec, panAlice1)).
		Return(nil, repositories.ErrCardNotFound)

	_, err := svc.Transfer(CreateTransferInput{
		FromCardNumber: panAlice1,
		ToCardNumber:   panAlice2,
		Amount:         decimal.RequireFromString("10.00"),
	}, owner)

	require.Error(t, err)
	assert.Equal(t, "Card number not found", errs.MessageOf(err))
	assert.Equal(t, 404, errs.StatusOf(err))
}

func TestTransfer_NonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5.00"} {
		t.Run(amount, func(t *testing.T) {
			svc, db, _, _, _ := newTestService(t)

			_, err := svc.Transfer(CreateTransferInput{
				FromCardNumber: panAlice1,
				ToCardNumber:   panAlice2,
				Amount:         decimal.RequireFromString(amount),
			}, uuid.New())

			require.Error(t, err)
			assert.Equal(t, "Amount must be positive", errs.MessageOf(err))
			db.AssertNotCalled(t, "Transaction")
		})
	}
}

func TestTransfer_SelfTransferNetsZero(t *testing.T) {
	owner := uuid.New()
	card := activeCard(owner, "75.00")

	svc, db, cards, transactions, codec := newTestService(t)
	db.On("Transaction").Return(nil)
	// Both numbers resolve to the same row; it is locked exactly once
	// and saved exactly once.
	cards.On("FindByNumberEncrypted", mustEncrypt(t, codec, panAlice1)).Return(card, nil)
	cards.On("GetByIDForUpdate", card.ID).Return(card, nil).Once()
	cards.On("Save", card).Return(nil).Once()
	transactions.On("Create", mock.Anything).Return(nil)

	record, err := svc.Transfer(CreateTransferInput{
		FromCardNumber: panAlice1,
		ToCardNumber:   panAlice1,
		Amount:         decimal.RequireFromString("30.00"),
	}, owner)

	require.NoError(t, err)
	assert.True(t, card.Balance.Equal(decimal.RequireFromString("75.00")),
		"balance changed to %s", card.Balance)
	assert.Equal(t, record.FromCardID, record.ToCardID)
	cards.AssertExpectations(t)
}

func TestTransfer_LedgerWriteFailureAborts(t *testing.T) {
	owner := uuid.New()
	from := activeCard(owner, "50.00")
	to := activeCard(owner, "0.00")

	svc, db, cards, transactions, codec := newTestService(t)
	db.On("Transaction").Return(nil)
	expectResolveAndLock(cards, codec, panAlice1, from, t)
	expectResolveAndLock(cards, codec, panAlice2, to, t)
	cards.On("Save", mock.Anything).Return(nil)
	transactions.On("Create", mock.Anything).Return(gorm.ErrInvalidData)

	_, err := svc.Transfer(CreateTransferInput{
		FromCardNumber: panAlice1,
		ToCardNumber:   panAlice2,
		Amount:         decimal.RequireFromString("10.00"),
	}, owner)

	require.Error(t, err)
	assert.Equal(t, 500, errs.StatusOf(err))
}

func TestLockPair_OrdersByID(t *testing.T) {
	owner := uuid.New()
	low := activeCard(owner, "10.00")
	high := activeCard(owner, "10.00")
	low.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high.ID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	var order []uuid.UUID
	cards := new(MockCardRepository)
	cards.On("GetByIDForUpdate", mock.Anything).
		Run(func(args mock.Arguments) {
			order = append(order, args.Get(0).(uuid.UUID))
		}).
		Return(low, nil).Once()
	cards.On("GetByIDForUpdate", mock.Anything).
		Return(high, nil).Once()

	// Transfer direction high -> low must still lock low first.
	from, to, err := lockPair(cards, high, low)
	require.NoError(t, err)
	require.Len(t, order, 1)
	assert.Equal(t, low.ID, order[0])
	// Direction is preserved despite the lock order.
	assert.Equal(t, high.ID, from.ID)
	assert.Equal(t, low.ID, to.ID)
}
