package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/normalization"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/requestdata"
	"github.com/turathhub/archive-backend/internal/types"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is what every sign-in path returns: the account, its
// profile, and a fresh token pair.
type AuthResult struct {
	User         *types.User        `json:"user"`
	Profile      *types.UserProfile `json:"profile"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	ExpiresAt    time.Time          `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// LoginWithGoogle verifies a Google ID token, provisioning the
	// account and profile on first sign-in and syncing the profile
	// photo on every later one.
	LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context) error
	// SetContextFromToken validates an access token and attaches the
	// caller's identity to the context for downstream handlers.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db          *gorm.DB
	userRepo    repos.UserRepo
	profileRepo repos.ProfileRepo
	tokenRepo   repos.UserTokenRepo
	google      GoogleVerifier
	jwtSecret   []byte
	accessTTL   time.Duration
	log         *logger.Logger
}

func NewAuthService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	tokenRepo repos.UserTokenRepo,
	google GoogleVerifier,
	jwtSecret string,
	baseLog *logger.Logger,
) AuthService {
	return &authService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		google:      google,
		jwtSecret:   []byte(jwtSecret),
		accessTTL:   24 * time.Hour,
		log:         baseLog.With("service", "AuthService"),
	}
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalization.ParseInputString(input.Email)
	username := normalization.ParseInputString(input.Username)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Validation("A valid email is required")
	}
	if username == "" {
		return nil, apierr.Validation("A username is required")
	}
	if len(input.Password) < 8 {
		return nil, apierr.Validation("Password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *types.User
	var profile *types.UserProfile
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		emailTaken, err := as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return err
		}
		if emailTaken {
			return apierr.Validation("Email is already registered")
		}
		usernameTaken, err := as.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return err
		}
		if usernameTaken {
			return apierr.Validation("Username is already taken")
		}

		user = &types.User{
			ID:       uuid.New(),
			Email:    email,
			Username: username,
			Password: string(hashed),
		}
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		// The profile rides in the same transaction; a user row
		// without a profile row must never be observable.
		profile = &types.UserProfile{
			ID:     uuid.New(),
			UserID: user.ID,
			Rank:   1,
		}
		if _, err := as.profileRepo.Create(ctx, tx, profile); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("registered user", "user_id", user.ID.String())
	return as.issueTokens(ctx, user, profile)
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalization.ParseInputString(email)
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, apierr.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("Invalid email or password")
	}
	profile, err := as.profileRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, user, profile)
}

func (as *authService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	identity, err := as.google.Verify(ctx, idToken)
	if err != nil {
		return nil, apierr.Unauthorized("Google sign-in failed: %v", err)
	}
	if !identity.EmailVerified || identity.Email == "" {
		return nil, apierr.Unauthorized("Google account email is not verified")
	}
	email := normalization.ParseInputString(identity.Email)

	var user *types.User
	var profile *types.UserProfile
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userRepo.GetByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing == nil {
			username, err := as.availableUsername(ctx, tx, email)
			if err != nil {
				return err
			}
			user = &types.User{
				ID:       uuid.New(),
				Email:    email,
				Username: username,
			}
			if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
				return err
			}
			profile = &types.UserProfile{
				ID:       uuid.New(),
				UserID:   user.ID,
				PhotoURL: identity.Picture,
				Rank:     1,
			}
			if _, err := as.profileRepo.Create(ctx, tx, profile); err != nil {
				return err
			}
			return nil
		}

		user = existing
		profile, err = as.profileRepo.GetByUserID(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if profile != nil && identity.Picture != "" && profile.PhotoURL != identity.Picture {
			profile.PhotoURL = identity.Picture
			if err := as.profileRepo.Save(ctx, tx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return as.issueTokens(ctx, user, profile)
}

// availableUsername derives a username from the email local part,
// suffixing a counter until it is free.
func (as *authService) availableUsername(ctx context.Context, tx *gorm.DB, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	base = normalization.ParseInputString(base)
	if base == "" {
		base = "user"
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := as.userRepo.UsernameExists(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apierr.Unauthorized("Missing refresh token")
	}
	stored, err := as.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, apierr.Unauthorized("Refresh token is invalid or expired")
	}

	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthorized("Account no longer exists")
	}
	profile, err := as.profileRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}

	// Rotation: the presented refresh token is single use.
	if err := as.tokenRepo.DeleteByIDs(ctx, nil, []uuid.UUID{stored.ID}); err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, user, profile)
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Unauthorized("Not signed in")
	}
	stored, err := as.tokenRepo.GetByAccessToken(ctx, nil, rd.TokenString)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}
	return as.tokenRepo.DeleteByIDs(ctx, nil, []uuid.UUID{stored.ID})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return ctx, apierr.Unauthorized("Invalid access token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("Invalid access token subject")
	}

	// A signed token that has been logged out must not authenticate.
	stored, err := as.tokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		return ctx, err
	}
	if stored == nil || stored.UserID != userID {
		return ctx, apierr.Unauthorized("Session has been revoked")
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: stored.RefreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, user *types.User, profile *types.UserProfile) (*AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(as.accessTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	record := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(30 * 24 * time.Hour),
	}
	if _, err := as.tokenRepo.Create(ctx, nil, record); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
