package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/config"
	"github.com/bazarhub/catalog-api/internal/domain/entity"
	repo "github.com/bazarhub/catalog-api/internal/domain/repository"
	"github.com/bazarhub/catalog-api/pkg/helpers"
	"github.com/bazarhub/catalog-api/pkg/mailer"
	"github.com/bazarhub/catalog-api/pkg/oauth"
	"github.com/bazarhub/catalog-api/pkg/sms"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActivated       = errors.New("account not activated")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrInvalidActivation  = errors.New("invalid or expired activation link")
	ErrSendFailed         = errors.New("verification message could not be sent")
)

// EmailQueue is the outbound email capability; satisfied by
// helpers.RabbitPublisher in production.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, activation, login and OAuth
// federation over the user repository and the notification senders.
type AuthService struct {
	Users         repo.UserRepository
	JWT           *helpers.JWTManager
	Mail          EmailQueue
	MailEnabled   bool
	SMS           sms.Sender
	Policy        config.VerificationPolicy
	ActivationURL string
	OTPTTL        time.Duration
	Logger        *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mail EmailQueue, mailEnabled bool, smsSender sms.Sender, policy config.VerificationPolicy, activationURL string, otpTTL time.Duration, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:         users,
		JWT:           jwt,
		Mail:          mail,
		MailEnabled:   mailEnabled,
		SMS:           smsSender,
		Policy:        policy,
		ActivationURL: activationURL,
		OTPTTL:        otpTTL,
		Logger:        logger,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// RegisterResult reports which verification path was taken so the
// handler can phrase its response.
type RegisterResult struct {
	UserID    string
	Activated bool   // no verification required, account usable immediately
	OTPSent   bool   // one-time code dispatched
	LinkSent  bool   // activation link dispatched
	Channel   string // "email" or "phone" when something was dispatched
}

// Register creates the user and dispatches the correct verification
// path. Email takes precedence over phone when both are present. The
// user row is persisted before any message goes out; a dispatch failure
// surfaces as ErrSendFailed with the row already in place so the caller
// can retry sending.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	existing, err := s.Users.FindByAny(ctx, in.Username, in.Email, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	switch {
	case in.Email != "":
		return s.finishEmailRegistration(ctx, u)
	case in.Phone != "":
		return s.finishPhoneRegistration(ctx, u)
	default:
		if err := s.Users.SetActivated(ctx, u.ID); err != nil {
			return nil, err
		}
		return &RegisterResult{UserID: u.ID, Activated: true}, nil
	}
}

func (s *AuthService) finishEmailRegistration(ctx context.Context, u *entity.User) (*RegisterResult, error) {
	if !s.Policy.EmailVerificationEnabled {
		if err := s.Users.SetActivated(ctx, u.ID); err != nil {
			return nil, err
		}
		return &RegisterResult{UserID: u.ID, Activated: true}, nil
	}

	if s.Policy.OTPVerificationEnabled {
		code, expires, err := helpers.NewOTP(s.OTPTTL)
		if err != nil {
			return nil, err
		}
		if err := s.Users.SetOTP(ctx, u.ID, code, expires); err != nil {
			return nil, err
		}
		if err := s.sendEmail(ctx, u.Email, "OTP for Registration",
			fmt.Sprintf("Your OTP is %s. Use this code to complete your registration.", code)); err != nil {
			return nil, err
		}
		return &RegisterResult{UserID: u.ID, OTPSent: true, Channel: "email"}, nil
	}

	token, _, err := s.JWT.GenerateActivationToken(u.ID)
	if err != nil {
		return nil, err
	}
	link := s.ActivationURL + "/" + token
	if err := s.sendEmail(ctx, u.Email, "Account Activation",
		"Please click the following link to activate your account: "+link); err != nil {
		return nil, err
	}
	return &RegisterResult{UserID: u.ID, LinkSent: true, Channel: "email"}, nil
}

func (s *AuthService) finishPhoneRegistration(ctx context.Context, u *entity.User) (*RegisterResult, error) {
	if !s.Policy.PhoneVerificationEnabled {
		if err := s.Users.SetActivated(ctx, u.ID); err != nil {
			return nil, err
		}
		return &RegisterResult{UserID: u.ID, Activated: true}, nil
	}

	code, expires, err := helpers.NewOTP(s.OTPTTL)
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetOTP(ctx, u.ID, code, expires); err != nil {
		return nil, err
	}
	body := fmt.Sprintf("Your OTP is %s. Use this code to complete your registration.", code)
	if err := s.SMS.Send(ctx, u.Phone, body); err != nil {
		s.logWarn("sms dispatch failed", err, logrus.Fields{"user_id": u.ID})
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return &RegisterResult{UserID: u.ID, OTPSent: true, Channel: "phone"}, nil
}

// ActivateByToken flips the account to activated from a signed
// activation-link token. Re-activating an already-active account still
// succeeds.
func (s *AuthService) ActivateByToken(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		s.logWarn("activation token rejected", err, nil)
		return ErrInvalidActivation
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidActivation
	}
	if u.IsActivated {
		return nil
	}
	return s.Users.SetActivated(ctx, u.ID)
}

type purposeKind int

const (
	purposeRegister purposeKind = iota
	purposeLogin
	purposeResetPassword
)

// VerifyPurpose names what a successful OTP match completes.
type VerifyPurpose struct {
	kind        purposeKind
	newPassword string
}

func PurposeRegister() VerifyPurpose { return VerifyPurpose{kind: purposeRegister} }
func PurposeLogin() VerifyPurpose    { return VerifyPurpose{kind: purposeLogin} }
func PurposeResetPassword(newPassword string) VerifyPurpose {
	return VerifyPurpose{kind: purposeResetPassword, newPassword: newPassword}
}

type VerifyResult struct {
	Activated     bool
	PasswordReset bool
	Token         string
	TokenExpiry   time.Time
}

// VerifyOTP resolves the user by contact (email when it contains "@",
// phone otherwise), consumes the code atomically, then completes the
// purpose-specific action. A consumed code cannot be replayed.
func (s *AuthService) VerifyOTP(ctx context.Context, contact, code string, purpose VerifyPurpose) (*VerifyResult, error) {
	field := repo.ContactFieldPhone
	lookup := s.Users.GetByPhone
	if strings.Contains(contact, "@") {
		field = repo.ContactFieldEmail
		lookup = s.Users.GetByEmail
	}
	u, err := lookup(ctx, contact)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	u, err = s.Users.ConsumeOTP(ctx, field, contact, code)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidOTP
	}

	switch purpose.kind {
	case purposeRegister:
		if err := s.Users.SetActivated(ctx, u.ID); err != nil {
			return nil, err
		}
		return &VerifyResult{Activated: true}, nil
	case purposeLogin:
		token, exp, err := s.JWT.GenerateBearerToken(u.ID, u.Email)
		if err != nil {
			return nil, err
		}
		return &VerifyResult{Token: token, TokenExpiry: exp}, nil
	case purposeResetPassword:
		hash, err := helpers.HashPassword(purpose.newPassword)
		if err != nil {
			return nil, err
		}
		if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
			return nil, err
		}
		return &VerifyResult{PasswordReset: true}, nil
	}
	return nil, fmt.Errorf("unknown verification purpose")
}

type LoginResult struct {
	UserID      string
	Token       string
	TokenExpiry time.Time
	OTPSent     bool // phone path with OTP enabled: no token yet
}

// Login classifies the identifier (phone / email / username) and
// dispatches to the matching credential check.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	switch classifyIdentifier(identifier) {
	case identifierPhone:
		return s.loginByPhone(ctx, identifier)
	case identifierEmail:
		return s.loginByPassword(ctx, s.Users.GetByEmail, identifier, password)
	default:
		return s.loginByPassword(ctx, s.Users.GetByUsername, identifier, password)
	}
}

func (s *AuthService) loginByPhone(ctx context.Context, phone string) (*LoginResult, error) {
	u, err := s.Users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if s.Policy.PhoneVerificationEnabled {
		code, expires, err := helpers.NewOTP(s.OTPTTL)
		if err != nil {
			return nil, err
		}
		if err := s.Users.SetOTP(ctx, u.ID, code, expires); err != nil {
			return nil, err
		}
		body := fmt.Sprintf("Your OTP is %s. Use this code to complete your login.", code)
		if err := s.SMS.Send(ctx, phone, body); err != nil {
			s.logWarn("sms dispatch failed", err, logrus.Fields{"user_id": u.ID})
			return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
		}
		return &LoginResult{UserID: u.ID, OTPSent: true}, nil
	}
	return s.issueToken(u)
}

func (s *AuthService) loginByPassword(ctx context.Context, lookup func(context.Context, string) (*entity.User, error), identifier, password string) (*LoginResult, error) {
	u, err := lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if s.Policy.EmailVerificationEnabled && !u.IsActivated {
		return nil, ErrNotActivated
	}
	return s.issueToken(u)
}

func (s *AuthService) issueToken(u *entity.User) (*LoginResult, error) {
	token, exp, err := s.JWT.GenerateBearerToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: u.ID, Token: token, TokenExpiry: exp}, nil
}

// GoogleLogin exchanges a provider profile for a local user, creating
// one on first contact, and issues a bearer token.
func (s *AuthService) GoogleLogin(ctx context.Context, p oauth.Profile) (*entity.User, *LoginResult, error) {
	u, err := s.Users.GetByGoogleID(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		u = &entity.User{
			GoogleID: p.ID,
			Email:    p.Email,
			Username: p.Name,
		}
		if err := s.Users.Create(ctx, u); err != nil {
			return nil, nil, err
		}
	}
	res, err := s.issueToken(u)
	if err != nil {
		return nil, nil, err
	}
	return u, res, nil
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type identifierKind int

const (
	identifierPhone identifierKind = iota
	identifierEmail
	identifierUsername
)

// classifyIdentifier is total: anything that is neither a phone number
// nor an email is treated as a username.
func classifyIdentifier(identifier string) identifierKind {
	switch {
	case phonePattern.MatchString(identifier):
		return identifierPhone
	case emailPattern.MatchString(identifier):
		return identifierEmail
	default:
		return identifierUsername
	}
}

func (s *AuthService) sendEmail(ctx context.Context, to, subject, text string) error {
	if !s.MailEnabled {
		s.logWarn("mail sending disabled, skipping dispatch", nil, logrus.Fields{"to": to})
		return nil
	}
	job := mailer.EmailJob{To: to, Subject: subject, Text: text}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.logWarn("email dispatch failed", err, logrus.Fields{"to": to})
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

func (s *AuthService) logWarn(msg string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	e := s.Logger.WithFields(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Warn(msg)
}
