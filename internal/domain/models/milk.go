package models

// Liters captured per milking shift must stay within this range.
const (
	MinShiftLiters = 0.0
	MaxShiftLiters = 50.0
)

// MilkRecord captures one day of milk production for one animal. At most one
// record exists per (cattleId, productionDate) pair; concurrent submissions for
// the same pair are merged on write rather than inserted twice.
type MilkRecord struct {
	ID              string  `bson:"_id,omitempty" json:"id"`
	CattleID        string  `bson:"cattleId" json:"cattleId"`
	CattleName      string  `bson:"cattleName" json:"cattleName"`
	CattleBreed     string  `bson:"cattleBreed" json:"cattleBreed"`
	ProductionDate  string  `bson:"productionDate" json:"productionDate"`
	MorningLiters   float64 `bson:"morningLiters" json:"morningLiters"`
	AfternoonLiters float64 `bson:"afternoonLiters" json:"afternoonLiters"`
	EveningLiters   float64 `bson:"eveningLiters" json:"eveningLiters"`
	TotalLiters     float64 `bson:"totalLiters" json:"totalLiters"`
	Notes           string  `bson:"notes,omitempty" json:"notes,omitempty"`
	OwnerID         string  `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// ShiftSum returns the sum of the three shift quantities. TotalLiters is always
// recomputed from this, never trusted from input.
func (r MilkRecord) ShiftSum() float64 {
	return r.MorningLiters + r.AfternoonLiters + r.EveningLiters
}
