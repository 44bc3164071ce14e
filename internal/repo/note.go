package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wandernote/internal/domain"
)

// NoteRepo defines the persistence operations for journal Notes.
// Reads join the linked destination so responses can show "City, Country".
type NoteRepo interface {
	// Create inserts a note under one of the user's trips.
	// Returns domain.ErrNotFound if the user owns no trip with n.TripID.
	Create(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)

	// GetByID retrieves a single note.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error)

	// ListByTrip returns a trip's notes, newest date first and, within a day,
	// most recently written first.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Note, error)

	// Update overwrites the mutable fields of a note.
	Update(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgNoteRepo struct {
	db db
}

// NewNoteRepo constructs a NoteRepo backed by the provided db connection.
func NewNoteRepo(db db) NoteRepo {
	return &pgNoteRepo{db: db}
}

const noteColumns = `n.id, n.trip_id, n.destination_id, n.title, n.content, n.type, n.mood,
	n.date, n.location, n.image_url, n.is_favorite, n.created_at, n.updated_at,
	COALESCE(d.city || ', ' || d.country, '')`

func (r *pgNoteRepo) Create(ctx context.Context, userID uuid.UUID, note domain.Note) (domain.Note, error) {
	const q = `
		WITH n AS (
			INSERT INTO notes (trip_id, destination_id, title, content, type, mood,
			                   date, location, image_url, is_favorite)
			SELECT t.id, @destination_id::uuid, @title::text, @content::text, @type::text,
			       @mood::text, @date::date, @location::text, @image_url::text, @is_favorite::bool
			FROM trips t
			WHERE t.id = @trip_id AND t.user_id = @user_id
			RETURNING *
		)
		SELECT ` + noteColumns + `
		FROM n
		LEFT JOIN destinations d ON d.id = n.destination_id`

	args := noteArgs(note)
	args["trip_id"] = note.TripID
	args["user_id"] = userID

	result, err := scanNote(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error) {
	const q = `
		SELECT ` + noteColumns + `
		FROM notes n
		JOIN trips t ON t.id = n.trip_id
		LEFT JOIN destinations d ON d.id = n.destination_id
		WHERE n.id = @id AND t.user_id = @user_id`

	result, err := scanNote(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Note, error) {
	const q = `
		SELECT ` + noteColumns + `
		FROM notes n
		JOIN trips t ON t.id = n.trip_id
		LEFT JOIN destinations d ON d.id = n.destination_id
		WHERE n.trip_id = @trip_id AND t.user_id = @user_id
		ORDER BY n.date DESC, n.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.NoteRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.NoteRepo.ListByTrip: scan: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.NoteRepo.ListByTrip: rows: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepo) Update(ctx context.Context, userID uuid.UUID, note domain.Note) (domain.Note, error) {
	const q = `
		WITH n AS (
			UPDATE notes AS n
			SET destination_id = @destination_id::uuid,
			    title          = @title,
			    content        = @content,
			    type           = @type,
			    mood           = @mood::text,
			    date           = @date::date,
			    location       = @location,
			    image_url      = @image_url,
			    is_favorite    = @is_favorite,
			    updated_at     = now()
			FROM trips t
			WHERE n.id = @id AND t.id = n.trip_id AND t.user_id = @user_id
			RETURNING n.*
		)
		SELECT ` + noteColumns + `
		FROM n
		LEFT JOIN destinations d ON d.id = n.destination_id`

	args := noteArgs(note)
	args["id"] = note.ID
	args["user_id"] = userID

	result, err := scanNote(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		DELETE FROM notes AS n
		USING trips t
		WHERE n.id = @id AND t.id = n.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.NoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func noteArgs(n domain.Note) pgx.NamedArgs {
	var mood *string
	if n.Mood != nil {
		m := string(*n.Mood)
		mood = &m
	}
	return pgx.NamedArgs{
		"destination_id": n.DestinationID,
		"title":          n.Title,
		"content":        n.Content,
		"type":           string(n.Type),
		"mood":           mood,
		"date":           n.Date,
		"location":       n.Location,
		"image_url":      n.ImageURL,
		"is_favorite":    n.IsFavorite,
	}
}

func scanNote(s scanner) (domain.Note, error) {
	var (
		n        domain.Note
		id       pgtype.UUID
		tripID   pgtype.UUID
		destID   pgtype.UUID
		noteType string
		mood     *string
		date     pgtype.Date
	)

	err := s.Scan(&id, &tripID, &destID, &n.Title, &n.Content, &noteType, &mood,
		&date, &n.Location, &n.ImageURL, &n.IsFavorite, &n.CreatedAt, &n.UpdatedAt,
		&n.DestinationLabel)
	if err != nil {
		return domain.Note{}, notFound(err)
	}

	n.ID = uuid.UUID(id.Bytes)
	n.TripID = uuid.UUID(tripID.Bytes)
	if destID.Valid {
		d := uuid.UUID(destID.Bytes)
		n.DestinationID = &d
	}
	n.Type = domain.NoteType(noteType)
	if mood != nil {
		m := domain.Mood(*mood)
		n.Mood = &m
	}
	n.Date = date.Time
	return n, nil
}
