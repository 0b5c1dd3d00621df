package models

import "time"

// Favourites hold a snapshot of the entity taken when it was starred; later
// catalog changes do not reach them.

type FavouriteDestination struct {
	ID          string      `json:"id"`
	Destination Destination `json:"destination"`
	AddedAt     time.Time   `json:"addedAt"`
}

type FavouriteRoute struct {
	ID      string    `json:"id"`
	Route   Route     `json:"route"`
	AddedAt time.Time `json:"addedAt"`
}

// FavouriteSchedule also keeps the parent route so it can be shown without
// a catalog lookup.
type FavouriteSchedule struct {
	ID       string    `json:"id"`
	Schedule Schedule  `json:"schedule"`
	Route    Route     `json:"route"`
	AddedAt  time.Time `json:"addedAt"`
}
