// models/flight.go
package models

// FlightOffersResponse is the subset of the flight-offer search response we read.
type FlightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

// FlightOffer is one priced itinerary set.
type FlightOffer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       *OfferPrice `json:"price,omitempty"`
}

// Itinerary is one direction of travel.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg.
type Segment struct {
	Departure     SegmentEndpoint  `json:"departure"`
	Arrival       SegmentEndpoint  `json:"arrival"`
	CarrierCode   string           `json:"carrierCode"`
	Number        string           `json:"number"`
	Aircraft      *SegmentAircraft `json:"aircraft,omitempty"`
	NumberOfStops int              `json:"numberOfStops"`
}

// SegmentEndpoint is the departure or arrival of a segment.
type SegmentEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// SegmentAircraft carries the equipment code.
type SegmentAircraft struct {
	Code string `json:"code"`
}

// AircraftCode returns the equipment code or "" when absent.
func (s Segment) AircraftCode() string {
	if s.Aircraft == nil {
		return ""
	}
	return s.Aircraft.Code
}

// OfferPrice is the total price of an offer.
type OfferPrice struct {
	Currency   string `json:"currency"`
	GrandTotal string `json:"grandTotal"`
}

// ItinerarySummary is the JSON returned by /flights/{src}/{dest}/{date}.
type ItinerarySummary struct {
	OfferID       string     `json:"offer_id"`
	NumSegments   int        `json:"num_segments"`
	DepIATACodes  []string   `json:"dep_iata_codes"`
	ArrIATACodes  []string   `json:"arr_iata_codes"`
	AircraftCodes []string   `json:"aircraft_codes"`
	SegmentKM     []*float64 `json:"segment_distance_km"` // null where a code could not be resolved
	Price         string     `json:"price,omitempty"`
}
