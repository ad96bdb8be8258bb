package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// maxHierarchyDepth bounds the parent walk of the cycle check.
const maxHierarchyDepth = 64

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// NewAccountService creates the account directory service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, opts ...ServiceOption) *accountService {
	return &accountService{
		BaseService: newBaseService(opts),
		accountRepo: accountRepo,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	number := strings.TrimSpace(req.AccountNumber)
	name := strings.TrimSpace(req.Name)
	if number == "" || name == "" {
		return nil, fmt.Errorf("%w: account number and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByNumber(ctx, tenantID, number)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up account number", slog.String("account_number", number))
		return nil, fmt.Errorf("failed to check account number: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountNumber, number)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.findParent(ctx, tenantID, parentID); err != nil {
			return nil, err
		}
	}

	now := s.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		AccountNumber:   number,
		Name:            name,
		Description:     req.Description,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateAccountNumber) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_number", number))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_number", number))
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditCreate,
		EntityType: domain.EntityAccount,
		EntityID:   account.AccountID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details: map[string]any{
			"accountNumber": account.AccountNumber,
			"accountType":   string(account.AccountType),
		},
	})
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{
		AccountType:     domain.AccountType(params.AccountType),
		IsActive:        params.IsActive,
		ParentAccountID: params.ParentAccountID,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if filter.AccountType != "" && !filter.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, params.AccountType)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
		changed["name"] = name
	}
	if req.Description != nil {
		account.Description = *req.Description
		changed["description"] = *req.Description
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		parentID := *req.ParentAccountID
		if parentID != "" {
			if err := s.checkReparent(ctx, tenantID, accountID, parentID); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = parentID
		changed["parentAccountID"] = parentID
	}
	if len(changed) == 0 {
		return account, nil
	}

	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = actorID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.InvalidateReports(tenantID)
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditUpdate,
		EntityType: domain.EntityAccount,
		EntityID:   accountID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details:    changed,
	})
	return account, nil
}

// DeactivateAccount never checks drafts or balances. Inactive accounts are
// refused later, when a draft references them or an entry is posted.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	return s.setActive(ctx, tenantID, accountID, false, actorID)
}

func (s *accountService) ActivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	return s.setActive(ctx, tenantID, accountID, true, actorID)
}

func (s *accountService) setActive(ctx context.Context, tenantID, accountID string, active bool, actorID string) error {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if account.IsActive == active {
		if !active {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInactive, account.AccountNumber)
		}
		return nil
	}

	account.IsActive = active
	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = actorID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to change account status", slog.String("account_id", accountID), slog.Bool("active", active))
		return err
	}

	action := domain.AuditDeactivate
	if active {
		action = domain.AuditActivate
	}
	s.InvalidateReports(tenantID)
	s.LogInfo(ctx, "Account status changed", slog.String("account_id", accountID), slog.Bool("active", active))
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     action,
		EntityType: domain.EntityAccount,
		EntityID:   accountID,
		TenantID:   tenantID,
		ActorID:    actorID,
	})
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}

	hasHistory, err := s.accountRepo.HasLineHistory(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account history", slog.String("account_id", accountID))
		return err
	}
	if hasHistory {
		return fmt.Errorf("%w: %s is referenced by journal lines", apperrors.ErrAccountHasHistory, account.AccountNumber)
	}
	hasChildren, err := s.accountRepo.HasChildren(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: %s has child accounts", apperrors.ErrAccountHasHistory, account.AccountNumber)
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrAccountHasHistory) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}

	s.InvalidateReports(tenantID)
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditDelete,
		EntityType: domain.EntityAccount,
		EntityID:   accountID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details:    map[string]any{"accountNumber": account.AccountNumber},
	})
	return nil
}

func (s *accountService) findParent(ctx context.Context, tenantID, parentID string) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrParentNotFound, parentID)
		}
		s.LogError(ctx, err, "Failed to look up parent account", slog.String("parent_account_id", parentID))
		return nil, err
	}
	return parent, nil
}

// checkReparent walks up from the proposed parent and fails if it reaches accountID.
func (s *accountService) checkReparent(ctx context.Context, tenantID, accountID, parentID string) error {
	if parentID == accountID {
		return fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrParentCycle)
	}
	current, err := s.findParent(ctx, tenantID, parentID)
	if err != nil {
		return err
	}
	for depth := 0; current.ParentAccountID != ""; depth++ {
		if current.ParentAccountID == accountID {
			return fmt.Errorf("%w: %s is a descendant of the account", apperrors.ErrParentCycle, parentID)
		}
		if depth >= maxHierarchyDepth {
			return fmt.Errorf("%w: hierarchy deeper than %d levels", apperrors.ErrParentCycle, maxHierarchyDepth)
		}
		current, err = s.findParent(ctx, tenantID, current.ParentAccountID)
		if err != nil {
			return err
		}
	}
	return nil
}
