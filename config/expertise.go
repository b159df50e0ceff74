package config

// ExpertiseLevel allows to group settings by user expertise.
// It's useful if complex or technical settings should be hidden
// from a default user.
type ExpertiseLevel uint8

// Expertise Level constants.
const (
	ExpertiseLevelUser      ExpertiseLevel = 0
	ExpertiseLevelExpert    ExpertiseLevel = 1
	ExpertiseLevelDeveloper ExpertiseLevel = 2

	ExpertiseLevelNameUser      = "user"
	ExpertiseLevelNameExpert    = "expert"
	ExpertiseLevelNameDeveloper = "developer"
)

// Name returns the name of the expertise level.
func (el ExpertiseLevel) Name() string {
	switch el {
	case ExpertiseLevelUser:
		return ExpertiseLevelNameUser
	case ExpertiseLevelExpert:
		return ExpertiseLevelNameExpert
	case ExpertiseLevelDeveloper:
		return ExpertiseLevelNameDeveloper
	default:
		return ""
	}
}
