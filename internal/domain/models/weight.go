package models

// Weights outside this range are rejected at input time.
const (
	MinWeightKg = 50.0
	MaxWeightKg = 1200.0
)

// WeightRecord captures one weigh-in for one animal. Multiple records on the
// same date are allowed and all appear in history and charts. PreviousWeight
// and WeightChange are filled from the animal's latest earlier record when the
// record is created; both stay nil for the first weigh-in.
type WeightRecord struct {
	ID             string   `bson:"_id,omitempty" json:"id"`
	CattleID       string   `bson:"cattleId" json:"cattleId"`
	CattleName     string   `bson:"cattleName" json:"cattleName"`
	CattleBreed    string   `bson:"cattleBreed" json:"cattleBreed"`
	WeightDate     string   `bson:"weightDate" json:"weightDate"`
	WeightKg       float64  `bson:"weightKg" json:"weightKg"`
	PreviousWeight *float64 `bson:"previousWeight,omitempty" json:"previousWeight,omitempty"`
	WeightChange   *float64 `bson:"weightChange,omitempty" json:"weightChange,omitempty"`
	Notes          string   `bson:"notes,omitempty" json:"notes,omitempty"`
	OwnerID        string   `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}
