package progress

import (
	"errors"
	"fmt"

	"github.com/abhisek/hanzi/internal/catalog"
)

// ErrInvalidProfile is returned when a profile patch carries a bad value.
var ErrInvalidProfile = errors.New("progress: invalid profile")

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name           *string
	TargetLevel    *catalog.HSKLevel
	DailyGoal      *int
	TotalStudyTime *int
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.TargetLevel == nil && p.DailyGoal == nil && p.TotalStudyTime == nil
}

// Validate rejects values the profile must never hold.
func (p ProfilePatch) Validate() error {
	if p.TargetLevel != nil && !p.TargetLevel.Valid() {
		return fmt.Errorf("%w: target level %q", ErrInvalidProfile, *p.TargetLevel)
	}
	if p.DailyGoal != nil && *p.DailyGoal <= 0 {
		return fmt.Errorf("%w: daily goal must be positive, got %d", ErrInvalidProfile, *p.DailyGoal)
	}
	if p.TotalStudyTime != nil && *p.TotalStudyTime < 0 {
		return fmt.Errorf("%w: negative study time %d", ErrInvalidProfile, *p.TotalStudyTime)
	}
	return nil
}

// Apply returns u with every set field of p copied over.
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.TargetLevel != nil {
		u.TargetLevel = *p.TargetLevel
	}
	if p.DailyGoal != nil {
		u.DailyGoal = *p.DailyGoal
	}
	if p.TotalStudyTime != nil {
		u.TotalStudyTime = *p.TotalStudyTime
	}
	return u
}

// sanitize replaces stored values the profile must never hold with their
// defaults, field by field.
func sanitize(u UserProfile) UserProfile {
	def := defaultProfile()
	if !u.TargetLevel.Valid() {
		u.TargetLevel = def.TargetLevel
	}
	if u.DailyGoal <= 0 {
		u.DailyGoal = def.DailyGoal
	}
	if u.TotalStudyTime < 0 {
		u.TotalStudyTime = 0
	}
	return u
}
