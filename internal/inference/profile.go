package inference

// Profile selects which simulated-respondent segment the remote model answers as.
type Profile string

// The two segments the model was tuned on. The literal values are part of the
// wire contract with the inference service and must not change independently.
const (
	// ProfileCDMXJoven: Mexico City, C-/D+ socioeconomic level, 18-25 years old.
	ProfileCDMXJoven Profile = "cdmx_c-d+_18-25"
	// ProfileMTYAdulto: Monterrey, C+/B socioeconomic level, 46-60 years old.
	ProfileMTYAdulto Profile = "mty_c+b_46-60"
)

// Profiles returns the enumerated profile set.
func Profiles() []Profile {
	return []Profile{ProfileCDMXJoven, ProfileMTYAdulto}
}

// Valid reports whether p is a member of the enumerated profile set.
func (p Profile) Valid() bool {
	switch p {
	case ProfileCDMXJoven, ProfileMTYAdulto:
		return true
	}
	return false
}
