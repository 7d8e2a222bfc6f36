package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careloop/hms-backend/internal/apperr"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Role     string

	// Patient fields
	Age              *int
	Gender           *string
	BloodGroup       *string
	Address          *string
	EmergencyContact *string

	// Doctor fields
	Specialization  *string
	Qualification   *string
	ExperienceYears *int
	ConsultationFee *float64
	Bio             *string
}

type AuthResult struct {
	Token  string
	UserID uuid.UUID
	Name   string
	Email  string
	Role   Role
}

// AuthService handles registration and login.
type AuthService struct {
	repo   Repository
	tokens *TokenProvider
}

func NewAuthService(repo Repository, tokens *TokenProvider) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates the user row and the role-specific profile in one
// transaction, then issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	var gender *string
	if in.Gender != nil && *in.Gender != "" {
		g, err := NormalizeGender(*in.Gender)
		if err != nil {
			return nil, err
		}
		gender = &g
	}

	if _, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         role,
	}

	switch role {
	case RolePatient:
		patient := &Patient{
			ID:               uuid.New(),
			UserID:           user.ID,
			Age:              in.Age,
			Gender:           gender,
			BloodGroup:       in.BloodGroup,
			Address:          in.Address,
			EmergencyContact: in.EmergencyContact,
		}
		err = s.repo.CreatePatient(ctx, user, patient)
	case RoleDoctor:
		doctor := &Doctor{
			ID:              uuid.New(),
			UserID:          user.ID,
			Specialization:  in.Specialization,
			Qualification:   in.Qualification,
			ExperienceYears: in.ExperienceYears,
			ConsultationFee: in.ConsultationFee,
			Available:       true,
			Bio:             in.Bio,
		}
		err = s.repo.CreateDoctor(ctx, user, doctor)
	}
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("create %s: %w", role, err)
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// Login validates credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Unauthenticated("Invalid email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func validateRegister(in RegisterInput) error {
	if in.Name == "" {
		return apperr.Invalid("Name is required")
	}
	if in.Email == "" {
		return apperr.Invalid("Email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Invalid("Invalid email format")
	}
	if len(in.Password) < 6 {
		return apperr.Invalid("Password must be at least 6 characters")
	}
	if in.Role == "" {
		return apperr.Invalid("Role is required")
	}
	return nil
}
