package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/storage"
	"gorm.io/gorm"
)

type UserService struct {
	db      *gorm.DB
	storage storage.Storage
	auth    *AuthService
}

func NewUserService(db *gorm.DB, store storage.Storage, auth *AuthService) *UserService {
	return &UserService{db: db, storage: store, auth: auth}
}

// UpdateUserInput is a partial patch over a user's profile. Nil fields
// are left untouched. Role and Points are honored only on admin calls;
// whenever Points changes the level is recomputed, never set directly.
type UpdateUserInput struct {
	FullName    *string
	Email       *string
	DNI         *string
	Phone       *string
	DateOfBirth *time.Time
	Address     *string
	Password    *string
	Role        *models.UserRole
	Points      *int
	Avatar      []byte
	AvatarExt   string
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("updated_at DESC").Find(&users).Error
	return users, err
}

// CreateUser is the admin variant of registration: it accepts an initial
// point balance, falls back to a temporary password, and issues the
// user's identification QR right away.
func (s *UserService) CreateUser(fullName, dni, email, phone, address, password string, role models.UserRole, points int) (*models.User, error) {
	if password == "" {
		password = "Temporal123"
	}
	user, err := s.auth.Register(fullName, dni, email, password, role)
	if err != nil {
		return nil, err
	}

	user.Phone = phone
	user.Address = address
	user.Points = points
	user.Level = models.LevelForPoints(points)

	qrURL, err := s.issueUserQR(user)
	if err != nil {
		return nil, err
	}
	user.QRCodeImage = qrURL

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial patch. allowAdminFields gates role and
// points changes to admin callers.
func (s *UserService) UpdateUser(id uint, input UpdateUserInput, allowAdminFields bool) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.DNI != nil {
		user.DNI = *input.DNI
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if allowAdminFields {
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Points != nil {
			if *input.Points < 0 {
				return nil, ErrInvalidArgument
			}
			user.Points = *input.Points
		}
	}
	// Keep the derived level in lockstep with the balance.
	user.Level = models.LevelForPoints(user.Points)

	if input.Password != nil && *input.Password != "" {
		hashed, err := s.auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if len(input.Avatar) > 0 {
		avatarURL, err := s.storage.Save(input.Avatar, "avatars", input.AvatarExt)
		if err != nil {
			return nil, err
		}
		user.Avatar = avatarURL
	}

	if user.QRCodeImage == "" {
		qrURL, err := s.issueUserQR(user)
		if err != nil {
			return nil, err
		}
		user.QRCodeImage = qrURL
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// issueUserQR encodes the card the receptionist scans at the counter.
func (s *UserService) issueUserQR(user *models.User) (string, error) {
	return s.storage.IssueQR(fmt.Sprintf("%s-%s", user.DNI, user.Email), "user-qr")
}
