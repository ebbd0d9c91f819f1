package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

func newInstituteFixture() (InstituteService, *fakeRegistry) {
	registry := newFakeRegistry()
	svc := NewInstituteService(registry, testInstitute, zerolog.Nop())
	return svc, registry
}

func TestRegisterInstitute(t *testing.T) {
	svc, registry := newInstituteFixture()

	req := &dto.RegisterInstituteRequest{
		Account:     testInstitute,
		Name:        "Dhaka Institute of Technology",
		Degrees:     []string{"B.Sc"},
		Departments: []string{"CSE"},
	}

	require.NoError(t, svc.Register(context.Background(), req))
	assert.Contains(t, registry.institutes, testInstitute)

	// Registering the same address again fails.
	err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInstituteAlreadyExists)
}

func TestRegisterInstituteValidation(t *testing.T) {
	svc, _ := newInstituteFixture()

	tests := []struct {
		name string
		req  *dto.RegisterInstituteRequest
	}{
		{"missing name", &dto.RegisterInstituteRequest{Account: testInstitute, Degrees: []string{"B.Sc"}, Departments: []string{"CSE"}}},
		{"no degrees", &dto.RegisterInstituteRequest{Account: testInstitute, Name: "DIT", Departments: []string{"CSE"}}},
		{"no departments", &dto.RegisterInstituteRequest{Account: testInstitute, Name: "DIT", Degrees: []string{"B.Sc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestGetInstituteNotFound(t *testing.T) {
	svc, _ := newInstituteFixture()

	_, err := svc.Get(context.Background(), "0x00000000000000000000000000000000000000aa")
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestListMutationsRequireSigner(t *testing.T) {
	svc, registry := newInstituteFixture()
	registry.add(testInstitute, chain.Institute{Name: "DIT", Degrees: []string{"B.Sc"}, Departments: []string{"CSE"}})

	other := "0x00000000000000000000000000000000000000aa"

	assert.ErrorIs(t, svc.AddDegrees(context.Background(), other, []string{"M.Sc"}), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.UpdateDegree(context.Background(), other, 0, "M.Sc"), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.RemoveDepartment(context.Background(), other, 0), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ClearDepartments(context.Background(), other), apperrors.ErrPermissionDenied)

	// The signing institute passes.
	assert.NoError(t, svc.AddDegrees(context.Background(), testInstitute, []string{"M.Sc"}))
}

func TestListMutationsBoundsCheck(t *testing.T) {
	svc, registry := newInstituteFixture()
	registry.add(testInstitute, chain.Institute{Name: "DIT", Degrees: []string{"B.Sc"}, Departments: []string{"CSE"}})

	assert.ErrorIs(t, svc.UpdateDegree(context.Background(), testInstitute, 5, "M.Sc"), apperrors.ErrInvalidListIndex)
	assert.ErrorIs(t, svc.RemoveDegree(context.Background(), testInstitute, 1), apperrors.ErrInvalidListIndex)
	assert.ErrorIs(t, svc.UpdateDepartment(context.Background(), testInstitute, 2, "EEE"), apperrors.ErrInvalidListIndex)

	assert.NoError(t, svc.UpdateDegree(context.Background(), testInstitute, 0, "M.Sc"))
}
