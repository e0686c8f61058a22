package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/email"
	"github.com/mwangaza/dukahub-api/pkg/oauth"
	"github.com/mwangaza/dukahub-api/pkg/utils"
)

// Role granted to every self-registered account.
const defaultSignupRole = "shopkeeper"

// Password reset tokens expire after this window.
const resetTokenTTL = time.Hour

// AuthService handles sign-in, registration, sessions, profile changes, and
// the password-reset flow. Google sign-in is optional; when not configured
// the OAuth endpoints reject with a bad-request error.
type AuthService struct {
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	emailService      *email.EmailService
	googleOAuth       *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		emailService:      emailService,
		googleOAuth:       googleOAuth,
	}
}

// LoginInput carries the credentials for password sign-in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is an authenticated session: the user plus a token pair.
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// issueSession loads the user with roles and mints a token pair. The access
// token embeds role and permission names so the middleware can authorize
// without a database round trip.
func (s *AuthService) issueSession(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, roles, user.GetPermissions())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issueSession(ctx, user.ID)
}

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	ShopName  string
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emailLocalPart returns the address's local part, used as the initial
// username.
func emailLocalPart(addr string) string {
	if i := strings.Index(addr, "@"); i > 0 {
		return addr[:i]
	}
	return addr
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Register creates a new account and grants it the shopkeeper role. A
// missing shopkeeper role does not fail the registration.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  emailLocalPart(input.Email),
		Email:     input.Email,
		Password:  hashedPassword,
		ShopName:  strPtrOrNil(input.ShopName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.grantSignupRole(ctx, user.ID)
	return user, nil
}

func (s *AuthService) grantSignupRole(ctx context.Context, userID uuid.UUID) {
	role, err := s.roleRepo.GetByName(ctx, defaultSignupRole)
	if err != nil || role == nil {
		return
	}
	_ = s.userRepo.AssignRole(ctx, userID, role.ID)
}

// RefreshToken rotates a refresh token into a fresh session.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueSession(ctx, userID)
}

// GetCurrentUser returns the account behind a session, roles included.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// ChangePasswordInput carries a password change for a signed-in user.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// UpdateProfileInput carries the editable profile fields. String fields are
// skipped when empty; pointer fields are skipped when nil.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	FirstName   string
	LastName    string
	Username    string
	Photo       *string
	ShopName    *string
	ShopAddress *string
	ShopPhone   *string
	ShopEmail   *string
}

// UpdateProfile applies a partial update to the user's profile and shop
// details. Changing the username checks it is not already taken.
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Username != "" && input.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperror.NewConflictError("Username already taken")
		}
		user.Username = input.Username
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}
	if input.ShopName != nil {
		user.ShopName = input.ShopName
	}
	if input.ShopAddress != nil {
		user.ShopAddress = input.ShopAddress
	}
	if input.ShopPhone != nil {
		user.ShopPhone = input.ShopPhone
	}
	if input.ShopEmail != nil {
		user.ShopEmail = input.ShopEmail
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPasswordInput carries the address requesting a reset.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPassword issues a reset token and emails it. Unknown addresses
// return nil so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil || user == nil {
		return nil
	}

	// A new request invalidates any outstanding tokens for the address.
	_ = s.passwordResetRepo.DeleteByEmail(ctx, input.Email)

	token, err := randomHex(32)
	if err != nil {
		return err
	}

	resetToken := &entity.PasswordResetToken{
		Email:     input.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		Used:      false,
	}
	if err := s.passwordResetRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(input.Email, token)
}

// ResetPasswordInput carries the token-based password reset.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword consumes a reset token and sets the new password. Every
// failure mode reports the same message so tokens cannot be probed.
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	invalidToken := apperror.NewBadRequestError("Invalid or expired reset token")

	resetToken, err := s.passwordResetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if resetToken == nil || resetToken.Email != input.Email || !resetToken.IsValid() {
		return invalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return invalidToken
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// The password is already changed at this point; token cleanup is best
	// effort.
	if err := s.passwordResetRepo.MarkAsUsed(ctx, input.Token); err != nil {
		return nil
	}
	_ = s.passwordResetRepo.DeleteByEmail(ctx, input.Email)
	return nil
}

// GetGoogleAuthURL returns the Google consent URL plus the state value the
// callback must echo back.
func (s *AuthService) GetGoogleAuthURL() (authURL, state string, err error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return "", "", apperror.NewBadRequestError("Google sign-in is not configured")
	}

	state, err = randomHex(16)
	if err != nil {
		return "", "", err
	}
	return s.googleOAuth.GetAuthURL(state), state, nil
}

// LoginWithGoogle exchanges a Google authorization code for a local session,
// creating the account on first sign-in.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*LoginOutput, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if !info.VerifiedEmail {
		return nil, apperror.NewBadRequestError("Google account email is not verified")
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			Username:   emailLocalPart(info.Email),
			Email:      info.Email,
			Provider:   "google",
			ProviderID: &info.ID,
		}
		if info.Picture != "" {
			user.Photo = &info.Picture
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.grantSignupRole(ctx, user.ID)
	}

	return s.issueSession(ctx, user.ID)
}

// FrontendSuccessURL returns the frontend redirect target after OAuth success.
func (s *AuthService) FrontendSuccessURL() string {
	if s.googleOAuth == nil {
		return ""
	}
	return s.googleOAuth.GetFrontendSuccessURL()
}

// FrontendErrorURL returns the frontend redirect target after OAuth failure.
func (s *AuthService) FrontendErrorURL() string {
	if s.googleOAuth == nil {
		return ""
	}
	return s.googleOAuth.GetFrontendErrorURL()
}
