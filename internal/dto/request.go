package dto

// AvailabilityRequest asks whether a party of the given size can still be
// booked onto a tour's start on the given day.
type AvailabilityRequest struct {
	TourID             uint   `json:"tour_id"`
	RequestedHeadcount int    `json:"requested_headcount"`
	Date               string `json:"date"` // YYYY-MM-DD
}

// WishlistAddRequest adds one tour to a session's wishlist.
type WishlistAddRequest struct {
	TourID uint `json:"tour_id"`
}
