package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	port "github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// userModel is the gorm mapping of domain.User. The composite index backs the
// sweep query on (next_notification, message_status).
type userModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	FirstName        string    `gorm:"not null"`
	LastName         string    `gorm:"not null"`
	Email            string    `gorm:"uniqueIndex;not null"`
	Birthday         time.Time `gorm:"not null"`
	Location         string    `gorm:"not null"`
	NextNotification time.Time `gorm:"not null;index:idx_users_due,priority:1"`
	MessageStatus    string    `gorm:"not null;index:idx_users_due,priority:2"`
}

func (userModel) TableName() string { return "users" }

// PostgresUserStore implements store.UserStore on gorm/postgres.
type PostgresUserStore struct {
	db *gorm.DB
}

var _ port.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore opens the connection and migrates the users table.
// TranslateError maps driver errors onto gorm's sentinel errors so the port
// can expose ErrDuplicateEmail without leaking pg internals.
func NewPostgresUserStore(dsn string) (*PostgresUserStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&userModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}
	return &PostgresUserStore{db: db}, nil
}

// NewPostgresUserStoreWithDB wraps an existing gorm connection, used by tests.
func NewPostgresUserStoreWithDB(db *gorm.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	model := toModel(user)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	res := s.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", user.ID).
		Select("*").Omit("id").
		Updates(toModel(user))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&userModel{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var model userModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	user := toDomain(model)
	return &user, nil
}

func (s *PostgresUserStore) FindDue(ctx context.Context, statuses []domain.MessageStatus, from, to time.Time) ([]domain.User, error) {
	statusValues := make([]string, 0, len(statuses))
	for _, st := range statuses {
		statusValues = append(statusValues, string(st))
	}

	var models []userModel
	err := s.db.WithContext(ctx).
		Where("message_status IN ? AND next_notification >= ? AND next_notification <= ?", statusValues, from, to).
		Order("next_notification asc").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, toDomain(m))
	}
	return users, nil
}

func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) error {
	res := s.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"message_status":    string(user.MessageStatus),
			"next_notification": user.NextNotification,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return port.ErrNotFound
	}
	return nil
}

func toModel(u *domain.User) userModel {
	return userModel{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Birthday:         u.Birthday,
		Location:         u.Location,
		NextNotification: u.NextNotification,
		MessageStatus:    string(u.MessageStatus),
	}
}

func toDomain(m userModel) domain.User {
	return domain.User{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Birthday:         m.Birthday,
		Location:         m.Location,
		NextNotification: m.NextNotification,
		MessageStatus:    domain.MessageStatus(m.MessageStatus),
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return port.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return port.ErrDuplicateEmail
	default:
		return err
	}
}
