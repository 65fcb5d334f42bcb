package postgres

import (
	"time"

	"github.com/99minutos/postboard/internal/core/domain"
)

// UserModel mirrors the users table. Index names match the constraint names
// created by the migrations.
type UserModel struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"not null;uniqueIndex:users_username_key"`
	Email     string    `gorm:"not null;uniqueIndex:users_email_key"`
	Password  string    `gorm:"column:password;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type PostModel struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Text      string    `gorm:"not null"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (PostModel) TableName() string { return "posts" }

func toUser(m UserModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromUser(u *domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toPost(m PostModel) domain.Post {
	return domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Text:      m.Text,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromPost(p *domain.Post) PostModel {
	return PostModel{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
