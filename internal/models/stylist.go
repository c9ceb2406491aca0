package models

import "time"

// StylistStatus indicates whether a groomer can be assigned work.
type StylistStatus string

const (
	StylistActive   StylistStatus = "active"
	StylistInactive StylistStatus = "inactive"
	StylistOnLeave  StylistStatus = "on-leave"
)

// SkillLevel orders groomers for ranking. It never gates eligibility.
type SkillLevel string

const (
	SkillJunior       SkillLevel = "junior"
	SkillIntermediate SkillLevel = "intermediate"
	SkillSenior       SkillLevel = "senior"
	SkillMaster       SkillLevel = "master"
)

// Rank maps the level to its sort weight; unknown levels rank lowest.
func (l SkillLevel) Rank() int {
	switch l {
	case SkillMaster:
		return 4
	case SkillSenior:
		return 3
	case SkillIntermediate:
		return 2
	case SkillJunior:
		return 1
	default:
		return 0
	}
}

// PetSize buckets pets by weight class.
type PetSize string

const (
	PetSmall  PetSize = "small"
	PetMedium PetSize = "medium"
	PetLarge  PetSize = "large"
	PetGiant  PetSize = "giant"
)

// CoatCondition describes the state of the pet's coat on arrival.
type CoatCondition string

const (
	CoatNormal         CoatCondition = "normal"
	CoatMatted         CoatCondition = "matted"
	CoatSeverelyMatted CoatCondition = "severely-matted"
)

// IsMatted reports whether the coat needs a stylist certified for dematting.
func (c CoatCondition) IsMatted() bool {
	return c == CoatMatted || c == CoatSeverelyMatted
}

// PetProfile holds the pet attributes that drive stylist eligibility.
type PetProfile struct {
	Size          PetSize       `json:"pet_size"`
	CoatCondition CoatCondition `json:"coat_condition,omitempty"`
	IsAnxious     bool          `json:"is_anxious"`
	IsAggressive  bool          `json:"is_aggressive"`
}

// StylistCapacity stores the workload ceiling and handling capabilities of a stylist.
type StylistCapacity struct {
	StylistID            string     `json:"stylist_id"`
	MaxDailyAppointments int        `json:"max_daily_appointments"`
	PreferredPetSizes    []PetSize  `json:"preferred_pet_sizes"`
	CanHandleMatted      bool       `json:"can_handle_matted"`
	CanHandleAnxious     bool       `json:"can_handle_anxious"`
	CanHandleAggressive  bool       `json:"can_handle_aggressive"`
	SkillLevel           SkillLevel `json:"skill_level"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// AcceptsSize reports whether the size passes the preference gate. An empty set accepts any size.
func (c StylistCapacity) AcceptsSize(size PetSize) bool {
	if len(c.PreferredPetSizes) == 0 {
		return true
	}
	for _, preferred := range c.PreferredPetSizes {
		if preferred == size {
			return true
		}
	}
	return false
}

// Stylist represents a groomer on a facility roster.
type Stylist struct {
	ID         string           `db:"id" json:"id"`
	FacilityID string           `db:"facility_id" json:"facility_id"`
	Name       string           `db:"name" json:"name"`
	Email      *string          `db:"email" json:"email,omitempty"`
	Status     StylistStatus    `db:"status" json:"status"`
	Rating     float64          `db:"rating" json:"rating"`
	Capacity   *StylistCapacity `db:"-" json:"capacity,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the stylist can be considered for assignments.
func (s Stylist) IsActive() bool {
	return s.Status == StylistActive
}

// SkillRank returns the ranking weight of the stylist's skill level.
func (s Stylist) SkillRank() int {
	if s.Capacity == nil {
		return 0
	}
	return s.Capacity.SkillLevel.Rank()
}

// StylistFilter captures filtering options for listing stylists.
type StylistFilter struct {
	FacilityID string
	Search     string
	Status     StylistStatus
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
