package leaves

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) *Service {
	t.Helper()

	store := memory.NewStore()
	return NewService(memory.NewLeaveStore(store), memory.NewUserStore(store), nil, nopLogger{})
}

func createLeave(t *testing.T, svc *Service, employeeID int64) *models.LeaveResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &models.CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-14",
		Reason:     "отпуск по графику",
	})
	require.NoError(t, err)
	return resp
}

func TestCreate(t *testing.T) {
	svc := newService(t)

	resp := createLeave(t, svc, 5)
	assert.Equal(t, string(domain.LeaveStatusPending), resp.Status)
	assert.Equal(t, int64(5), resp.EmployeeID)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateLeaveRequest
	}{
		{"bad date", models.CreateLeaveRequest{EmployeeID: 5, StartDate: "01.10.2026", EndDate: "2026-10-14", Reason: "x"}},
		{"end before start", models.CreateLeaveRequest{EmployeeID: 5, StartDate: "2026-10-14", EndDate: "2026-10-01", Reason: "x"}},
		{"empty reason", models.CreateLeaveRequest{EmployeeID: 5, StartDate: "2026-10-01", EndDate: "2026-10-14", Reason: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_Access(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	l := createLeave(t, svc, 5)

	// Владелец и админ видят заявку, другому сотруднику отказано
	_, err := svc.GetByID(ctx, l.ID, 5, domain.RoleStaff)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, l.ID, 6, domain.RoleStaff)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, l.ID, 6, domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestReview(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	l := createLeave(t, svc, 5)

	reviewed, err := svc.Review(ctx, l.ID, &models.ReviewLeaveRequest{ReviewerID: 1, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.LeaveStatusApproved), reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, int64(1), *reviewed.ReviewedBy)

	// Решение по заявке принимается один раз
	_, err = svc.Review(ctx, l.ID, &models.ReviewLeaveRequest{ReviewerID: 1, Status: "rejected"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Review(ctx, 9999, &models.ReviewLeaveRequest{ReviewerID: 1, Status: "approved"})
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestList_Filter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	createLeave(t, svc, 5)
	createLeave(t, svc, 5)
	createLeave(t, svc, 6)

	all, err := svc.List(ctx, &models.ListLeavesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Leaves, 3)

	mine, err := svc.List(ctx, &models.ListLeavesRequest{EmployeeID: ptr.Ptr(int64(5))})
	require.NoError(t, err)
	assert.Len(t, mine.Leaves, 2)

	byStatus, err := svc.List(ctx, &models.ListLeavesRequest{Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	assert.Len(t, byStatus.Leaves, 3)
}
