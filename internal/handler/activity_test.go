package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/handler"
)

func activityFixture(destID uuid.UUID) domain.Activity {
	return domain.Activity{
		ID:            uuid.New(),
		DestinationID: destID,
		Date:          date(2025, 6, 2),
		Name:          "Fushimi Inari",
		Time:          &domain.ClockTime{Hour: 7, Minute: 30},
		Location:      "Fushimi Inari Taisha",
		Latitude:      ptr(34.9671),
		Longitude:     ptr(135.7727),
	}
}

func TestCreateActivity_201(t *testing.T) {
	destID := uuid.New()
	svc := &mockActivityServicer{
		create: func(_ context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, destID, a.DestinationID)
			require.NotNil(t, a.Time)
			assert.Equal(t, domain.ClockTime{Hour: 7, Minute: 30}, *a.Time)
			assert.Equal(t, date(2025, 6, 2), a.Date)
			return activityFixture(destID), nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodPost,
		"/api/destinations/"+destID.String()+"/activities", map[string]any{
			"date": "2025-06-02", "name": "Fushimi Inari", "time": "07:30", "location": "Fushimi Inari Taisha",
		})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[handler.Activity](t, rec)
	require.NotNil(t, resp.Time)
	assert.Equal(t, "07:30", *resp.Time)
	assert.Equal(t, "2025-06-02", resp.Date.Format("2006-01-02"))
}

func TestCreateActivity_WithoutTime(t *testing.T) {
	destID := uuid.New()
	svc := &mockActivityServicer{
		create: func(_ context.Context, _ uuid.UUID, a domain.Activity) (domain.Activity, error) {
			assert.Nil(t, a.Time)
			a.ID = uuid.New()
			return a, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodPost,
		"/api/destinations/"+destID.String()+"/activities", map[string]any{"date": "2025-06-02", "name": "Wander"})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[handler.Activity](t, rec)
	assert.Nil(t, resp.Time)
	assert.Nil(t, resp.Latitude)
}

func TestCreateActivity_422_BadTime(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Services{Activities: &mockActivityServicer{}}), http.MethodPost,
		"/api/destinations/"+uuid.NewString()+"/activities", map[string]any{
			"date": "2025-06-02", "name": "Late", "time": "25:99",
		})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestListActivities_200(t *testing.T) {
	destID := uuid.New()
	svc := &mockActivityServicer{
		listByDestination: func(_ context.Context, _, id uuid.UUID) ([]domain.Activity, error) {
			assert.Equal(t, destID, id)
			return []domain.Activity{activityFixture(destID)}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodGet,
		"/api/destinations/"+destID.String()+"/activities", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]handler.Activity](t, rec), 1)
}

func TestListActivities_404(t *testing.T) {
	svc := &mockActivityServicer{
		listByDestination: func(_ context.Context, _, _ uuid.UUID) ([]domain.Activity, error) {
			return nil, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodGet,
		"/api/destinations/"+uuid.NewString()+"/activities", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "destination not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestUpdateActivity_200(t *testing.T) {
	fixture := activityFixture(uuid.New())
	svc := &mockActivityServicer{
		update: func(_ context.Context, _ uuid.UUID, a domain.Activity) (domain.Activity, error) {
			assert.Equal(t, fixture.ID, a.ID)
			fixture.Name = a.Name
			return fixture, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodPut,
		"/api/activities/"+fixture.ID.String(), map[string]any{"date": "2025-06-02", "name": "Sunrise hike"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sunrise hike", decode[handler.Activity](t, rec).Name)
}

func TestDeleteActivity_404(t *testing.T) {
	svc := &mockActivityServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	rec := do(t, newHTTPHandler(handler.Services{Activities: svc}), http.MethodDelete, "/api/activities/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "activity not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}
