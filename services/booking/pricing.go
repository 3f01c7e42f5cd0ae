package booking

import "roomhive/models"

// Supported booking durations in months.
var validMonths = map[int]bool{3: true, 6: true}

// ComputeTotalAmount derives the booking total from the property's monthly
// rent. Double rooms cost twice the rent. Computed once at creation and
// never silently recomputed afterwards.
func ComputeTotalAmount(rent float64, roomType models.RoomType, months int) float64 {
	total := rent * float64(months)
	if roomType == models.RoomDouble {
		total *= 2
	}
	return total
}
