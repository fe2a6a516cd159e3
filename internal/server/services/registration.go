// Package services contains server-side business logic for nutritionist
// accounts: registration, login and session lookups.
package services

import (
	"context"
	"strings"

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

// RegisterInput is the registration request body.
type RegisterInput struct {
	Name  string `json:"name" validate:"required,min=3,max=100"`
	CRN   string `json:"crn" validate:"required,crn"`
	Email string `json:"email" validate:"required,max=254,email"`
	Senha string `json:"senha" validate:"required,min=8,bcryptmax"`
}

// RegistrationService creates nutritionist accounts.
type RegistrationService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	validator   *validation.Validator
	metrics     *metrics.Metrics
	logger      logging.Logger
}

// NewRegistrationService wires a RegistrationService. mt may be nil.
func NewRegistrationService(db dbx.DBTX, m repomanager.RepositoryManager, h auth.PasswordHasher,
	l logging.Logger, mt *metrics.Metrics) *RegistrationService {
	return &RegistrationService{
		db:          db,
		repomanager: m,
		hasher:      h,
		validator:   validation.New(),
		metrics:     mt,
		logger:      l.With("module", "registration"),
	}
}

// Register validates in, rejects duplicate email or CRN and stores a new
// account with a hashed password. Errors are *common.ValidationError,
// *common.ConflictError or *common.InternalError.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (n *models.Nutritionist, err error) {
	defer func() { s.metrics.ObserveRegistration(common.KindOf(err).String()) }()

	in.Name = strings.TrimSpace(in.Name)
	in.CRN = strings.TrimSpace(in.CRN)
	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Nutritionists(s.db)

	taken, err := repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, s.internal(ctx, "exists_by_email", err)
	}
	if taken {
		return nil, &common.ConflictError{Field: "email"}
	}

	taken, err = repo.ExistsByCRN(ctx, in.CRN)
	if err != nil {
		return nil, s.internal(ctx, "exists_by_crn", err)
	}
	if taken {
		return nil, &common.ConflictError{Field: "crn"}
	}

	hash, err := s.hasher.Hash(in.Senha)
	if err != nil {
		return nil, s.internal(ctx, "hash_password", err)
	}

	n, err = repo.Create(ctx, &models.Nutritionist{
		Name:         in.Name,
		CRN:          in.CRN,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// a concurrent insert can still lose the race on the unique constraints
		if common.KindOf(err) == common.KindConflict {
			return nil, err
		}
		return nil, s.internal(ctx, "create", err)
	}

	s.logger.Info(ctx, "nutritionist registered", "id", n.ID)
	return n, nil
}

func (s *RegistrationService) internal(ctx context.Context, op string, err error) error {
	err = oops.Code("registration_failed").With("operation", op).Wrap(err)
	logging.LogError(ctx, s.logger, "registration failed", err)
	return common.Internal(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
