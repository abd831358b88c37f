package domain

import (
	"strings"
	"time"
)

// Selection option groups. Values match the reference catalog, which is
// populated in Korean by the offline ETL.
const (
	GroupHealthConcern    = "건강 고민"
	GroupMedication       = "복용 약물"
	GroupSpecialCondition = "특이사항"
)

// Stress levels as captured by the survey.
const (
	StressLow    = "하"
	StressMedium = "중"
	StressHigh   = "상"
)

// Diet habit tags. Fixed vocabulary; anything else is ignored.
const (
	HabitLackVeggies = "lack_veggies"
	HabitGreasyFood  = "greasy_food"
	HabitInstantFood = "instant_food"
)

// UserProfile is one anonymous survey respondent. Created once per
// submission, immutable thereafter.
type UserProfile struct {
	ID           uint      `gorm:"primaryKey" json:"userId"`
	Age          int       `json:"age"`
	Gender       string    `gorm:"size:10" json:"gender"`
	StressLevel  string    `gorm:"size:10" json:"stressLevel"`
	SleepQuality int       `json:"sleepQuality"` // 1 (worst) to 5 (best)
	DietHabits   string    `json:"dietHabits"`   // comma-joined habit tags
	CreatedAt    time.Time `json:"createdAt"`
}

// DietHabitList splits the stored comma-joined habit tags.
func (p *UserProfile) DietHabitList() []string {
	if p.DietHabits == "" {
		return nil
	}
	parts := strings.Split(p.DietHabits, ",")
	habits := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			habits = append(habits, tag)
		}
	}
	return habits
}

// HasDietHabit reports whether the profile declared the given habit tag.
func (p *UserProfile) HasDietHabit(tag string) bool {
	for _, habit := range p.DietHabitList() {
		if habit == tag {
			return true
		}
	}
	return false
}

// SelectionOption is a catalog entry the user can pick in the survey:
// a health concern, a medication, or a special condition.
type SelectionOption struct {
	ID        uint   `gorm:"primaryKey" json:"selectionId"`
	Name      string `gorm:"size:100;uniqueIndex" json:"name"`
	GroupName string `gorm:"size:100" json:"groupName"`
}

// UserChoice links a profile to one picked selection option. Written at
// submission time, never mutated.
type UserChoice struct {
	UserID      uint `gorm:"primaryKey"`
	SelectionID uint `gorm:"primaryKey"`
}
