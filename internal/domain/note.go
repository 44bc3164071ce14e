package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoteType is the kind of journal entry.
type NoteType string

const (
	NoteTypeNote      NoteType = "note"
	NoteTypeEssay     NoteType = "essay"
	NoteTypeHighlight NoteType = "highlight"
	NoteTypePhoto     NoteType = "photo"
)

// Mood is an optional feeling attached to a journal entry.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodExcited     Mood = "excited"
	MoodPeaceful    Mood = "peaceful"
	MoodAdventurous Mood = "adventurous"
	MoodAmazed      Mood = "amazed"
	MoodTired       Mood = "tired"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeNote, NoteTypeEssay, NoteTypeHighlight, NoteTypePhoto:
		return true
	}
	return false
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodExcited, MoodPeaceful, MoodAdventurous, MoodAmazed, MoodTired:
		return true
	}
	return false
}

// Note is a journal entry written during a trip, optionally tied to one of
// the trip's destinations.
type Note struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	DestinationID *uuid.UUID
	Title         string
	Content       string
	Type          NoteType
	Mood          *Mood
	Date          time.Time
	Location      string
	ImageURL      string
	IsFavorite    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DestinationLabel is "City, Country" of the linked destination, when loaded.
	DestinationLabel string
}

// NoteFilter selects a subset of a trip's notes.
type NoteFilter string

const (
	NoteFilterAll    NoteFilter = "all"
	NoteFilterEssays NoteFilter = "essays"
	NoteFilterPhotos NoteFilter = "photos"
	NoteFilterSaved  NoteFilter = "saved"
)

// Match reports whether n passes the filter. Unknown filters match everything.
func (f NoteFilter) Match(n Note) bool {
	switch f {
	case NoteFilterEssays:
		return n.Type == NoteTypeEssay
	case NoteFilterPhotos:
		return n.ImageURL != ""
	case NoteFilterSaved:
		return n.IsFavorite
	default:
		return true
	}
}

// NoteCounts tallies a trip's notes per filter.
type NoteCounts struct {
	All    int
	Essays int
	Photos int
	Saved  int
}
