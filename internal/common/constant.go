// Package common contains shared constants and sentinel errors used across
// GoMate components.
package common

// Storage keys of the persisted collections. The names match the ones the
// mobile client writes, so a device dump can be imported as is.
const (
	KeySession               = "@gomate_user"
	KeyAccounts              = "@gomate_users_db"
	KeyFavouriteDestinations = "@gomate_favourite_destinations"
	KeyFavouriteRoutes       = "@gomate_favourite_routes"
	KeyFavouriteSchedules    = "@gomate_favourite_schedules"
	KeyRecentRoutes          = "@gomate_recent_routes"
)

// RecentRoutesLimit is the maximum number of routes kept in the
// recently-viewed list.
const RecentRoutesLimit = 5
