package models

// Sex enumerates the recorded sex of an animal.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// HealthStatus enumerates the denormalized health state of an animal.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthSick      HealthStatus = "sick"
	HealthTreatment HealthStatus = "treatment"
)

// Cattle represents one tracked animal. The lastWeight/todayMilkProduction
// fields are denormalized copies of the latest weight and milk records,
// maintained best-effort after each dependent write.
type Cattle struct {
	ID                    string       `bson:"_id,omitempty" json:"id"`
	Name                  string       `bson:"name" json:"name"`
	Breed                 string       `bson:"breed" json:"breed"`
	BirthDate             string       `bson:"birthDate" json:"birthDate"`
	Sex                   Sex          `bson:"sex" json:"sex"`
	PregnancyDueDate      string       `bson:"pregnancyDueDate,omitempty" json:"pregnancyDueDate,omitempty"`
	LastWeight            float64      `bson:"lastWeight" json:"lastWeight"`
	LastWeightDate        string       `bson:"lastWeightDate,omitempty" json:"lastWeightDate,omitempty"`
	TodayMilkProduction   float64      `bson:"todayMilkProduction" json:"todayMilkProduction"`
	AverageMilkProduction float64      `bson:"averageMilkProduction" json:"averageMilkProduction"`
	HealthStatus          HealthStatus `bson:"healthStatus" json:"healthStatus"`
	Observations          []string     `bson:"observations,omitempty" json:"observations,omitempty"`
	Notes                 string       `bson:"notes,omitempty" json:"notes,omitempty"`
	OwnerID               string       `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// IsPregnant reports whether a due date has been recorded for the animal.
func (c Cattle) IsPregnant() bool {
	return c.PregnancyDueDate != ""
}
