package availability

import (
	"fmt"
	"strings"

	"github.com/noah-isme/pawcare-grooming-api/internal/models"
)

// CanHandlePet reports whether the stylist is qualified for the pet profile.
// A stylist without capacity data is allowed here; CheckAvailability rejects the same stylist.
func CanHandlePet(stylist models.Stylist, pet models.PetProfile) bool {
	if stylist.Capacity == nil {
		return true
	}
	return len(skillGaps(*stylist.Capacity, pet)) == 0
}

func skillGaps(capacity models.StylistCapacity, pet models.PetProfile) []string {
	var gaps []string
	if !capacity.AcceptsSize(pet.Size) {
		gaps = append(gaps, fmt.Sprintf("%s pets", pet.Size))
	}
	if pet.CoatCondition.IsMatted() && !capacity.CanHandleMatted {
		gaps = append(gaps, fmt.Sprintf("%s coats", pet.CoatCondition))
	}
	if pet.IsAnxious && !capacity.CanHandleAnxious {
		gaps = append(gaps, "anxious pets")
	}
	if pet.IsAggressive && !capacity.CanHandleAggressive {
		gaps = append(gaps, "aggressive pets")
	}
	return gaps
}

func skillMessage(capacity models.StylistCapacity, pet models.PetProfile) string {
	return "Stylist does not handle " + strings.Join(skillGaps(capacity, pet), ", ")
}
