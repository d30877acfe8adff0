package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID               uint       `gorm:"primaryKey"`
	Email            string     `gorm:"uniqueIndex;size:255"`
	Phone            string     `gorm:"size:32"`
	PasswordHash     string     `gorm:"column:password"`
	FirstName        string     `gorm:"size:100"`
	Surname          string     `gorm:"size:100"`
	CompanyID        uint       `gorm:"index"`
	IsActive         bool       `gorm:"index"`
	IsPortalUser     bool       `gorm:"index"`
	IsCompanyAdmin   bool
	SkipTwoFactor    bool
	CurrentSessionID *string    `gorm:"size:64;index"`
	LastLoginAt      *time.Time
	LastLoginIP      string     `gorm:"size:45"`
	LastActivityAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "users"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// FindByEmail implements domain.AccountRepository. Only portal accounts are
// visible to the authentication service.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_portal_user = ?", email, true).
		First(&dbAccount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_portal_user = ?", id, true).
		First(&dbAccount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// RecordLogin implements domain.AccountRepository. All session fields land in
// one row-scoped UPDATE so a login racing another login resolves to one total
// order; the newer session id simply supersedes the older one.
func (r *AccountRepositoryImpl) RecordLogin(ctx context.Context, accountID uint, sessionID, origin string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBAccount{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"current_session_id": sessionID,
			"last_login_at":      at,
			"last_login_ip":      origin,
			"last_activity_at":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// TouchActivity implements domain.AccountRepository. The guard keeps
// last_activity_at monotonically non-decreasing under concurrent requests.
func (r *AccountRepositoryImpl) TouchActivity(ctx context.Context, accountID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).
		Where("id = ? AND (last_activity_at IS NULL OR last_activity_at <= ?)", accountID, at).
		Update("last_activity_at", at).Error
}

// ClearSession implements domain.AccountRepository
func (r *AccountRepositoryImpl) ClearSession(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).
		Where("id = ?", accountID).
		Update("current_session_id", nil).Error
}

// UpdatePassword implements domain.AccountRepository
func (r *AccountRepositoryImpl) UpdatePassword(ctx context.Context, accountID uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBAccount{}).
		Where("id = ?", accountID).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// dbToDomain converts the database account to the domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	account := &domain.Account{
		ID:             dbAccount.ID,
		Email:          dbAccount.Email,
		Phone:          dbAccount.Phone,
		PasswordHash:   dbAccount.PasswordHash,
		FirstName:      dbAccount.FirstName,
		Surname:        dbAccount.Surname,
		CompanyID:      dbAccount.CompanyID,
		IsActive:       dbAccount.IsActive,
		IsPortalUser:   dbAccount.IsPortalUser,
		IsCompanyAdmin: dbAccount.IsCompanyAdmin,
		SkipTwoFactor:  dbAccount.SkipTwoFactor,
		LastLoginAt:    dbAccount.LastLoginAt,
		LastLoginIP:    dbAccount.LastLoginIP,
		LastActivityAt: dbAccount.LastActivityAt,
		CreatedAt:      dbAccount.CreatedAt,
		UpdatedAt:      dbAccount.UpdatedAt,
	}
	if dbAccount.CurrentSessionID != nil {
		account.CurrentSessionID = *dbAccount.CurrentSessionID
	}
	return account
}
