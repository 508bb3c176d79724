package models

import "time"

// ObservationType enumerates the kinds of medical observations.
type ObservationType string

const (
	ObservationIllness     ObservationType = "illness"
	ObservationTreatment   ObservationType = "treatment"
	ObservationVaccination ObservationType = "vaccination"
	ObservationCheckup     ObservationType = "checkup"
	ObservationOther       ObservationType = "other"
)

// Severity grades a medical observation.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ObservationStatus tracks the lifecycle of an observation.
type ObservationStatus string

const (
	StatusActive    ObservationStatus = "active"
	StatusCompleted ObservationStatus = "completed"
	StatusSuspended ObservationStatus = "suspended"
)

// MedicalObservation captures one veterinary event for one animal. Unlike
// production and weight records, observation dates carry full timestamps.
type MedicalObservation struct {
	ID           string            `bson:"_id,omitempty" json:"id"`
	CattleID     string            `bson:"cattleId" json:"cattleId"`
	CattleName   string            `bson:"cattleName" json:"cattleName"`
	Date         time.Time         `bson:"date" json:"date"`
	Type         ObservationType   `bson:"type" json:"type"`
	Severity     Severity          `bson:"severity" json:"severity"`
	Symptoms     string            `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Diagnosis    string            `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Treatment    string            `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Medication   string            `bson:"medication,omitempty" json:"medication,omitempty"`
	Dosage       string            `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency    string            `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Duration     string            `bson:"duration,omitempty" json:"duration,omitempty"`
	NextCheckup  *time.Time        `bson:"nextCheckup,omitempty" json:"nextCheckup,omitempty"`
	Veterinarian string            `bson:"veterinarian,omitempty" json:"veterinarian,omitempty"`
	Cost         float64           `bson:"cost" json:"cost"`
	Notes        string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Status       ObservationStatus `bson:"status" json:"status"`
	OwnerID      string            `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// AffectsHealthStatus reports whether this observation type drives the owning
// animal's denormalized health status.
func (t ObservationType) AffectsHealthStatus() bool {
	return t == ObservationIllness || t == ObservationTreatment
}
