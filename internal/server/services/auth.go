package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/dbx"
	"github.com/dmitrijs2005/nutriportal/internal/logging"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/metrics"
	"github.com/dmitrijs2005/nutriportal/internal/server/models"
	"github.com/dmitrijs2005/nutriportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutriportal/internal/server/validation"
	"github.com/samber/oops"
)

// LoginInput is the login request body.
type LoginInput struct {
	Email string `json:"email" validate:"required,max=254,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResult is a successful login: the public account view and a signed
// session token valid until ExpiresAt.
type LoginResult struct {
	Account   models.PublicAccount
	Token     string
	ExpiresAt time.Time
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	issuer      *auth.TokenIssuer
	validator   *validation.Validator
	metrics     *metrics.Metrics
	logger      logging.Logger
}

// NewAuthService wires an AuthService. mt may be nil.
func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, h auth.PasswordHasher,
	issuer *auth.TokenIssuer, l logging.Logger, mt *metrics.Metrics) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		issuer:      issuer,
		validator:   validation.New(),
		metrics:     mt,
		logger:      l.With("module", "auth"),
	}
}

// Login checks the email and password pair. Unknown email and wrong password
// both return common.ErrInvalidCredentials after the same amount of hashing
// work.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (res *LoginResult, err error) {
	defer func() { s.metrics.ObserveLogin(common.KindOf(err).String()) }()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Nutritionists(s.db)

	n, err := repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(in.Senha)
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "find_by_email", err)
	}

	ok, err := s.hasher.Compare(n.PasswordHash, in.Senha)
	if err != nil {
		return nil, s.internal(ctx, "compare_password", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(n.ID)
	if err != nil {
		return nil, s.internal(ctx, "issue_token", err)
	}

	s.logger.Info(ctx, "nutritionist logged in", "id", n.ID)
	return &LoginResult{Account: n.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// Me returns the public view of the account a verified session belongs to.
func (s *AuthService) Me(ctx context.Context, id string) (*models.PublicAccount, error) {
	n, err := s.repomanager.Nutritionists(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "find_by_id", err)
	}

	p := n.Public()
	return &p, nil
}

// Verify checks a session token and returns its claims.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.issuer.Verify(token)
}

func (s *AuthService) internal(ctx context.Context, op string, err error) error {
	err = oops.Code("auth_failed").With("operation", op).Wrap(err)
	logging.LogError(ctx, s.logger, "auth operation failed", err)
	return common.Internal(err)
}
