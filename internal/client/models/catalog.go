package models

import "slices"

// DestinationCategory groups destinations for browsing.
type DestinationCategory string

const (
	CategoryLandmark  DestinationCategory = "landmark"
	CategoryMuseum    DestinationCategory = "museum"
	CategoryReligious DestinationCategory = "religious"
	CategoryNature    DestinationCategory = "nature"
	CategoryBeach     DestinationCategory = "beach"
	CategoryCity      DestinationCategory = "city"
	CategoryAdventure DestinationCategory = "adventure"
)

type Destination struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Category        DestinationCategory `json:"category"`
	Description     string              `json:"description"`
	LongDescription string              `json:"longDescription,omitempty"`
	Image           string              `json:"image"`
	Latitude        float64             `json:"latitude"`
	Longitude       float64             `json:"longitude"`
	Rating          float64             `json:"rating"`
	Popular         bool                `json:"popular"`
	EntryFee        string              `json:"entryFee,omitempty"`
	OpeningHours    string              `json:"openingHours,omitempty"`
	BestTimeToVisit string              `json:"bestTimeToVisit,omitempty"`
	Facilities      []string            `json:"facilities,omitempty"`
	Activities      []string            `json:"activities,omitempty"`
	Routes          []string            `json:"routes,omitempty"`
}

// Clone returns a copy of d that shares no slices with it.
func (d Destination) Clone() Destination {
	d.Facilities = slices.Clone(d.Facilities)
	d.Activities = slices.Clone(d.Activities)
	d.Routes = slices.Clone(d.Routes)
	return d
}

// TransportMode is how a route is travelled.
type TransportMode string

const (
	TransportTrain   TransportMode = "train"
	TransportBus     TransportMode = "bus"
	TransportPrivate TransportMode = "private"
)

type Route struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	TransportMode TransportMode `json:"transportMode"`
	Duration      string        `json:"duration"`
	Distance      string        `json:"distance"`
	Price         float64       `json:"price"`
	Popular       bool          `json:"popular"`
	Scenic        bool          `json:"scenic"`
}

// ScheduleStatus is the live state of a departure.
type ScheduleStatus string

const (
	StatusOnTime    ScheduleStatus = "on-time"
	StatusDelayed   ScheduleStatus = "delayed"
	StatusCancelled ScheduleStatus = "cancelled"
)

type Schedule struct {
	ID            string         `json:"id"`
	RouteID       string         `json:"routeId"`
	DepartureTime string         `json:"departureTime"`
	ArrivalTime   string         `json:"arrivalTime"`
	TrainNumber   string         `json:"trainNumber,omitempty"`
	TrainName     string         `json:"trainName,omitempty"`
	BusNumber     string         `json:"busNumber,omitempty"`
	BusType       string         `json:"busType,omitempty"`
	Status        ScheduleStatus `json:"status"`
}

type BusStop struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

type TrainStation struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

// Catalog is the full read-only data set, in the layout of the bundled
// fixture and the remote API root document.
type Catalog struct {
	Destinations  []Destination  `json:"destinations"`
	Routes        []Route        `json:"routes"`
	Schedules     []Schedule     `json:"schedules"`
	BusStops      []BusStop      `json:"busStops"`
	TrainStations []TrainStation `json:"trainStations"`
}
