package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/handler"
	"github.com/pkordes/wandernote/internal/service"
)

func noteFixture(tripID uuid.UUID) domain.Note {
	destID := uuid.New()
	mood := domain.MoodPeaceful
	return domain.Note{
		ID:               uuid.New(),
		TripID:           tripID,
		DestinationID:    &destID,
		Title:            "Temple morning",
		Content:          "Quiet before the crowds.",
		Type:             domain.NoteTypeEssay,
		Mood:             &mood,
		Date:             date(2025, 6, 2),
		IsFavorite:       true,
		DestinationLabel: "Kyoto, Japan",
	}
}

func TestListNotes_200_WithCounts(t *testing.T) {
	tripID := uuid.New()
	svc := &mockNoteServicer{
		list: func(_ context.Context, _, id uuid.UUID, filter domain.NoteFilter) (service.NoteList, error) {
			assert.Equal(t, tripID, id)
			assert.Equal(t, domain.NoteFilterEssays, filter)
			return service.NoteList{
				Notes:  []domain.Note{noteFixture(tripID)},
				Counts: domain.NoteCounts{All: 4, Essays: 1, Photos: 2, Saved: 1},
			}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodGet,
		"/api/trips/"+tripID.String()+"/notes?filter=essays", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.NoteList](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, handler.NoteCounts{All: 4, Essays: 1, Photos: 2, Saved: 1}, resp.Counts)
	require.NotNil(t, resp.Data[0].Destination)
	assert.Equal(t, "Kyoto, Japan", *resp.Data[0].Destination)
	require.NotNil(t, resp.Data[0].Mood)
	assert.Equal(t, domain.MoodPeaceful, *resp.Data[0].Mood)
}

func TestListNotes_DefaultFilterIsAll(t *testing.T) {
	svc := &mockNoteServicer{
		list: func(_ context.Context, _, _ uuid.UUID, filter domain.NoteFilter) (service.NoteList, error) {
			assert.Equal(t, domain.NoteFilterAll, filter)
			return service.NoteList{Notes: []domain.Note{}}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodGet,
		"/api/trips/"+uuid.NewString()+"/notes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[handler.NoteList](t, rec).Data)
}

func TestListNotes_400_UnknownFilter(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Services{Notes: &mockNoteServicer{}}), http.MethodGet,
		"/api/trips/"+uuid.NewString()+"/notes?filter=videos", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_201(t *testing.T) {
	tripID := uuid.New()
	svc := &mockNoteServicer{
		create: func(_ context.Context, _ uuid.UUID, n domain.Note) (domain.Note, error) {
			assert.Equal(t, tripID, n.TripID)
			assert.Equal(t, domain.NoteTypePhoto, n.Type)
			assert.Equal(t, "https://img.example/1.jpg", n.ImageURL)
			assert.Nil(t, n.Mood)
			n.ID = uuid.New()
			return n, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodPost,
		"/api/trips/"+tripID.String()+"/notes", map[string]any{
			"title": "Gion at dusk", "type": "photo", "date": "2025-06-03", "image_url": "https://img.example/1.jpg",
		})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[handler.Note](t, rec)
	assert.Nil(t, resp.Destination)
	assert.Nil(t, resp.DestinationID)
}

func TestCreateNote_422_PhotoWithoutImage(t *testing.T) {
	svc := &mockNoteServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.Note) (domain.Note, error) {
			return domain.Note{}, fmt.Errorf("%w: photo notes need an image_url", domain.ErrValidation)
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodPost,
		"/api/trips/"+uuid.NewString()+"/notes", map[string]any{"title": "x", "type": "photo", "date": "2025-06-03"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "photo notes need an image_url", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestGetNote_200(t *testing.T) {
	fixture := noteFixture(uuid.New())
	svc := &mockNoteServicer{
		getByID: func(_ context.Context, _, id uuid.UUID) (domain.Note, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodGet, "/api/notes/"+fixture.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[handler.Note](t, rec).IsFavorite)
}

func TestUpdateNote_404(t *testing.T) {
	svc := &mockNoteServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.Note) (domain.Note, error) {
			return domain.Note{}, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodPut,
		"/api/notes/"+uuid.NewString(), map[string]any{"title": "x", "date": "2025-06-03", "mood": "happy"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "note not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestDeleteNote_204(t *testing.T) {
	svc := &mockNoteServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}

	rec := do(t, newHTTPHandler(handler.Services{Notes: svc}), http.MethodDelete, "/api/notes/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
