package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// InstituteService handles registry-side institute operations: registration,
// lookup, and degree/department list maintenance.
//
// List entries are referenced by index from issued certificates, so renaming,
// removing or clearing entries silently changes what old certificates
// display. The registry does not prevent this; neither does this service.
type InstituteService interface {
	Register(ctx context.Context, req *dto.RegisterInstituteRequest) error
	Get(ctx context.Context, account string) (*chain.Institute, error)

	AddDegrees(ctx context.Context, caller string, names []string) error
	UpdateDegree(ctx context.Context, caller string, index uint64, name string) error
	RemoveDegree(ctx context.Context, caller string, index uint64) error
	ClearDegrees(ctx context.Context, caller string) error

	AddDepartments(ctx context.Context, caller string, names []string) error
	UpdateDepartment(ctx context.Context, caller string, index uint64, name string) error
	RemoveDepartment(ctx context.Context, caller string, index uint64) error
	ClearDepartments(ctx context.Context, caller string) error
}

type instituteService struct {
	registry chain.InstitutionRegistry
	// signerAddress is the account list mutations are signed with; callers
	// other than this institute cannot mutate through this deployment.
	signerAddress string
	logger        zerolog.Logger
}

// NewInstituteService creates a new institute service.
func NewInstituteService(registry chain.InstitutionRegistry, signerAddress string, lgr zerolog.Logger) InstituteService {
	return &instituteService{
		registry:      registry,
		signerAddress: strings.ToLower(signerAddress),
		logger:        lgr.With().Str("service", "institute").Logger(),
	}
}

// Register adds a new institute record to the registry.
func (s *instituteService) Register(ctx context.Context, req *dto.RegisterInstituteRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("institute name is required")
	}
	if len(req.Degrees) == 0 {
		return apperrors.NewValidationError("at least one degree is required")
	}
	if len(req.Departments) == 0 {
		return apperrors.NewValidationError("at least one department is required")
	}

	registered, err := s.registry.HasInstitutePermission(ctx, req.Account)
	if err != nil {
		return err
	}
	if registered {
		return apperrors.ErrInstituteAlreadyExists
	}

	inst := chain.Institute{
		Name:            req.Name,
		PhysicalAddress: req.PhysicalAddress,
		Acronym:         req.Acronym,
		Link:            req.Link,
		Degrees:         req.Degrees,
		Departments:     req.Departments,
	}

	if err := s.registry.AddInstitute(ctx, req.Account, inst); err != nil {
		return err
	}

	s.logger.Info().Str("account", strings.ToLower(req.Account)).Str("name", req.Name).Msg("Institute registered")
	return nil
}

// Get retrieves an institute record by wallet address.
func (s *instituteService) Get(ctx context.Context, account string) (*chain.Institute, error) {
	institute, err := s.registry.GetInstitute(ctx, account)
	if err != nil {
		return nil, err
	}

	if institute == nil || institute.Name == "" {
		return nil, apperrors.ErrInstituteNotFound
	}

	return institute, nil
}

// requireSigner rejects list mutations from any institute other than the one
// this deployment signs for; registry list operations act on the transaction
// sender.
func (s *instituteService) requireSigner(caller string) error {
	if !strings.EqualFold(caller, s.signerAddress) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// checkListIndex bounds-checks an index against the caller's current list
// before paying for a transaction that would revert anyway.
func (s *instituteService) checkListIndex(ctx context.Context, caller string, index uint64, departments bool) error {
	institute, err := s.Get(ctx, caller)
	if err != nil {
		return err
	}

	list := institute.Degrees
	if departments {
		list = institute.Departments
	}

	if index >= uint64(len(list)) {
		return apperrors.ErrInvalidListIndex
	}
	return nil
}

func (s *instituteService) AddDegrees(ctx context.Context, caller string, names []string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if len(names) == 0 {
		return apperrors.NewValidationError("at least one degree name is required")
	}
	return s.registry.AddDegrees(ctx, names)
}

func (s *instituteService) UpdateDegree(ctx context.Context, caller string, index uint64, name string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("degree name is required")
	}
	if err := s.checkListIndex(ctx, caller, index, false); err != nil {
		return err
	}
	return s.registry.UpdateDegree(ctx, index, name)
}

func (s *instituteService) RemoveDegree(ctx context.Context, caller string, index uint64) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if err := s.checkListIndex(ctx, caller, index, false); err != nil {
		return err
	}
	return s.registry.RemoveDegree(ctx, index)
}

func (s *instituteService) ClearDegrees(ctx context.Context, caller string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	return s.registry.ClearDegrees(ctx)
}

func (s *instituteService) AddDepartments(ctx context.Context, caller string, names []string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if len(names) == 0 {
		return apperrors.NewValidationError("at least one department name is required")
	}
	return s.registry.AddDepartments(ctx, names)
}

func (s *instituteService) UpdateDepartment(ctx context.Context, caller string, index uint64, name string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("department name is required")
	}
	if err := s.checkListIndex(ctx, caller, index, true); err != nil {
		return err
	}
	return s.registry.UpdateDepartment(ctx, index, name)
}

func (s *instituteService) RemoveDepartment(ctx context.Context, caller string, index uint64) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	if err := s.checkListIndex(ctx, caller, index, true); err != nil {
		return err
	}
	return s.registry.RemoveDepartment(ctx, index)
}

func (s *instituteService) ClearDepartments(ctx context.Context, caller string) error {
	if err := s.requireSigner(caller); err != nil {
		return err
	}
	return s.registry.ClearDepartments(ctx)
}
