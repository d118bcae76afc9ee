package model

import "time"

// Movie represents a film in the catalog.  Movies are referenced by
// showtimes and are only mutated through admin flows, which live
// outside this service.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title.
//  Genre       – genre description, free text.
//  ImageURL    – poster image URL.
//  DurationMin – running time in minutes (defaults to 120).
//  Rating      – age rating label (defaults to "ATP").
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    `json:"id"`           // movies.id
	Title       string    `json:"title"`        // movies.title
	Genre       string    `json:"genre"`        // movies.genre
	ImageURL    string    `json:"image_url"`    // movies.image_url
	DurationMin uint32    `json:"duration_min"` // movies.duration_min
	Rating      string    `json:"rating"`       // movies.rating
	CreatedAt   time.Time `json:"-"`            // movies.created_at
	UpdatedAt   time.Time `json:"-"`            // movies.updated_at
}
