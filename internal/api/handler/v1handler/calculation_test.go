package v1handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"calculator/internal/calculation"
	mockauth "calculator/internal/auth/mock"
	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

// authedRequest builds a request that passes the bearer middleware as user.
func authedRequest(t *testing.T,
	a *mockauth.MockAuth,
	user *domain.User,
	method, target string,
	body any) *http.Request {
	t.Helper()

	a.EXPECT().Authenticate(gomock.Any(), "token").Return(user, nil)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer token")

	return req
}

func TestCreateCalculation(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()

	c.EXPECT().Create(gomock.Any(), user.ID, domain.OperationAddition, 2.0, 3.0).
		Return(&domain.Calculation{
			ID:        domain.CalculationID(uuid.New()),
			UserID:    user.ID,
			Operation: domain.OperationAddition,
			Operand1:  2,
			Operand2:  3,
			Result:    5,
		}, nil)

	req := authedRequest(t, a, user, http.MethodPost, "/api/calculations", map[string]any{
		"operation": "addition",
		"operand1":  2,
		"operand2":  3,
	})
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"result":5`)
}

func TestCreateCalculation_DivisionByZero(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()

	c.EXPECT().Create(gomock.Any(), user.ID, domain.OperationDivision, 1.0, 0.0).
		Return(nil, serrors.With(serrors.ErrBadRequest, "division by zero is not allowed"))

	req := authedRequest(t, a, user, http.MethodPost, "/api/calculations", map[string]any{
		"operation": "division",
		"operand1":  1,
		"operand2":  0,
	})
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "division by zero")
}

func TestListCalculations(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()

	c.EXPECT().UserCalculations(gomock.Any(), user.ID, "", uint(0)).
		Return([]domain.Calculation{
			{Operation: domain.OperationAddition, Result: 5},
			{Operation: domain.OperationDivision, Result: 2},
		}, "2026-01-02T15:04:05Z", nil)

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items      []domain.Calculation `json:"items"`
		NextCursor string               `json:"nextCursor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Items, 2)
	require.Equal(t, "2026-01-02T15:04:05Z", got.NextCursor)
}

func TestListCalculations_PassesCursorAndLimit(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()

	c.EXPECT().UserCalculations(gomock.Any(), user.ID, "2026-01-02T15:04:05Z", uint(5)).
		Return(nil, "", nil)

	req := authedRequest(t, a, user, http.MethodGet,
		"/api/calculations?cursor=2026-01-02T15%3A04%3A05Z&limit=5", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// an empty page still serializes items as an array
	require.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListCalculations_InvalidLimit(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations?limit=abc", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCalculation(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()
	id := domain.CalculationID(uuid.New())

	c.EXPECT().Calculation(gomock.Any(), user.ID, id).
		Return(&domain.Calculation{ID: id, Operation: domain.OperationMultiplication, Result: 6}, nil)

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations/"+uuid.UUID(id).String(), nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"result":6`)
}

func TestGetCalculation_BadID(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCalculation_NotFound(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()
	id := domain.CalculationID(uuid.New())

	c.EXPECT().Calculation(gomock.Any(), user.ID, id).
		Return(nil, serrors.With(serrors.ErrNotFound, "calculation not found"))

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations/"+uuid.UUID(id).String(), nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestUpdateCalculation(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()
	id := domain.CalculationID(uuid.New())

	c.EXPECT().Update(gomock.Any(), user.ID, id, gomock.Any()).DoAndReturn(
		func(_ any, _ domain.UserID, _ domain.CalculationID, params calculation.UpdateParams) (*domain.Calculation, error) {
			require.NotNil(t, params.Operand1)
			require.Equal(t, 10.0, *params.Operand1)
			require.Nil(t, params.Operation)

			return &domain.Calculation{ID: id, Operand1: 10, Operand2: 2, Result: 12}, nil
		},
	)

	req := authedRequest(t, a, user, http.MethodPut, "/api/calculations/"+uuid.UUID(id).String(),
		map[string]any{"operand1": 10})
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"result":12`)
}

func TestDeleteCalculation(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()
	id := domain.CalculationID(uuid.New())

	c.EXPECT().Delete(gomock.Any(), user.ID, id).Return(nil)

	req := authedRequest(t, a, user, http.MethodDelete, "/api/calculations/"+uuid.UUID(id).String(), nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestCalculationStats(t *testing.T) {
	a, c, routes := newTestHandler(t)
	user := testUser()

	c.EXPECT().Stats(gomock.Any(), user.ID).Return(domain.CalculationStats{
		Total: 7,
		ByOperation: map[domain.Operation]int64{
			domain.OperationAddition:       4,
			domain.OperationSubtraction:    0,
			domain.OperationMultiplication: 2,
			domain.OperationDivision:       1,
		},
	}, nil)

	req := authedRequest(t, a, user, http.MethodGet, "/api/calculations/stats/summary", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"totalCalculations":7`)
	require.Contains(t, rec.Body.String(), `"addition":4`)
}
