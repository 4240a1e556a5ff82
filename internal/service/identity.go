package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// IdentityConfig carries the token and hashing parameters.
type IdentityConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// IdentityService registers accounts, verifies credentials and issues
// access and refresh tokens.  It also backs the admin staff screens.
type IdentityService struct {
	uow UnitOfWork
	cfg IdentityConfig
	log *zap.Logger
}

func NewIdentityService(uow UnitOfWork, cfg IdentityConfig, log *zap.Logger) *IdentityService {
	return &IdentityService{uow: uow, cfg: cfg, log: log}
}

// AccountInput is the registration form.
type AccountInput struct {
	Username string
	Password string
	FullName string
	Contact  string
}

// Tokens is the result of a login or refresh.
type Tokens struct {
	Account      model.Account
	AccessToken  utils.AccessToken
	RefreshToken utils.RefreshToken
}

// Register creates a guest account.  Public registration can never
// create staff.
func (s *IdentityService) Register(ctx context.Context, in AccountInput) (model.Account, error) {
	return s.CreateAccount(ctx, in, model.RoleGuest)
}

// CreateEmployee creates an employee account on behalf of an admin.
func (s *IdentityService) CreateEmployee(ctx context.Context, sess auth.Session, in AccountInput) (model.Account, error) {
	if err := sess.Authorize(auth.OpManageStaff); err != nil {
		return model.Account{}, err
	}
	a, err := s.CreateAccount(ctx, in, model.RoleEmployee)
	if err == nil {
		s.log.Info("employee created", zap.String("username", a.Username), zap.String("by", sess.Username))
	}
	return a, err
}

// CreateAccount validates the form, hashes the password and stores the
// account with role.  It is used directly by the admin bootstrap command.
func (s *IdentityService) CreateAccount(ctx context.Context, in AccountInput, role model.Role) (model.Account, error) {
	if !role.Valid() {
		return model.Account{}, ErrInvalidRole
	}
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	switch {
	case in.Username == "":
		return model.Account{}, fmt.Errorf("%w: username", ErrMissingField)
	case in.Password == "":
		return model.Account{}, fmt.Errorf("%w: password", ErrMissingField)
	case in.FullName == "":
		return model.Account{}, fmt.Errorf("%w: fullname", ErrMissingField)
	}
	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return model.Account{}, err
	}
	a := model.Account{
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Contact:      strings.TrimSpace(in.Contact),
		Role:         role,
	}
	if err := s.uow.Stores().Accounts.Create(ctx, &a); err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// Login verifies credentials and issues a token pair.  Unknown users and
// wrong passwords both report ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, username, password string) (Tokens, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return Tokens{}, fmt.Errorf("%w: username and password", ErrMissingField)
	}
	a, err := s.uow.Stores().Accounts.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return Tokens{}, ErrInvalidCredentials
	}
	if err != nil {
		return Tokens{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		return Tokens{}, ErrInvalidCredentials
	}
	return s.issue(ctx, s.uow.Stores().Tokens, a)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued in the same transaction.  When a concurrent refresh
// revoked the token first, the revoke matches no row and the transaction
// rolls back without issuing anything.
func (s *IdentityService) Refresh(ctx context.Context, raw string) (Tokens, error) {
	if strings.TrimSpace(raw) == "" {
		return Tokens{}, fmt.Errorf("%w: refresh_token", ErrMissingField)
	}
	hash := utils.HashRefreshRaw(raw)
	var out Tokens
	err := s.uow.WithinTx(ctx, func(st repository.Stores) error {
		userID, err := st.Tokens.ValidateRefresh(ctx, hash)
		if err != nil {
			return err
		}
		a, err := st.Accounts.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := st.Tokens.RevokeByHash(ctx, hash); err != nil {
			return err
		}
		out, err = s.issue(ctx, st.Tokens, a)
		return err
	})
	if errors.Is(err, repository.ErrTokenNotFound) || errors.Is(err, repository.ErrAccountNotFound) {
		return Tokens{}, ErrInvalidCredentials
	}
	return out, err
}

// Logout revokes a refresh token.  Unknown tokens are ignored.
func (s *IdentityService) Logout(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: refresh_token", ErrMissingField)
	}
	err := s.uow.Stores().Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil
	}
	return err
}

// ListEmployees returns every employee account.
func (s *IdentityService) ListEmployees(ctx context.Context, sess auth.Session) ([]model.Account, error) {
	if err := sess.Authorize(auth.OpManageStaff); err != nil {
		return nil, err
	}
	return s.uow.Stores().Accounts.ListByRole(ctx, model.RoleEmployee)
}

// DeleteEmployee removes an employee account.  Ids of guests or admins
// report ErrAccountNotFound.
func (s *IdentityService) DeleteEmployee(ctx context.Context, sess auth.Session, id uint64) error {
	if err := sess.Authorize(auth.OpManageStaff); err != nil {
		return err
	}
	if err := s.uow.Stores().Accounts.DeleteByRole(ctx, id, model.RoleEmployee); err != nil {
		return err
	}
	s.log.Info("employee deleted", zap.Uint64("account_id", id), zap.String("by", sess.Username))
	return nil
}

func (s *IdentityService) issue(ctx context.Context, tokens repository.TokenStore, a model.Account) (Tokens, error) {
	at, err := utils.NewAccessToken(s.cfg.JWTSecret, a.ID, a.Username, string(a.Role), s.cfg.AccessTTL)
	if err != nil {
		return Tokens{}, err
	}
	rt, err := utils.NewRefreshToken(s.cfg.RefreshTTL)
	if err != nil {
		return Tokens{}, err
	}
	if err := tokens.StoreRefresh(ctx, a.ID, utils.HashRefreshRaw(rt.Raw), rt.Exp); err != nil {
		return Tokens{}, err
	}
	return Tokens{Account: a, AccessToken: at, RefreshToken: rt}, nil
}

