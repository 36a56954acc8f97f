package model

// NotificationSound selects the chime played when a timer interval ends.
type NotificationSound string

const (
	SoundChime   NotificationSound = "chime"
	SoundGong    NotificationSound = "gong"
	SoundDigital NotificationSound = "digital"
	SoundSuccess NotificationSound = "success"
	SoundBowl    NotificationSound = "bowl"
)

// UserProfile holds user settings. It is stored as a single-record collection.
type UserProfile struct {
	Name              string            `json:"name" validate:"max=128"`
	Email             string            `json:"email" validate:"omitempty,email"`
	Bio               string            `json:"bio" validate:"max=1024"`
	NotificationSound NotificationSound `json:"notificationSound,omitempty" validate:"omitempty,oneof=chime gong digital success bowl"`
	BreaksTaken       int               `json:"breaksTaken" validate:"gte=0"`
}

// DefaultProfile returns the profile used before the user edits settings.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:              "Jake",
		NotificationSound: SoundChime,
	}
}
