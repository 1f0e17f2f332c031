package model

import "time"

// DefaultAwayWindow is how long after LastSeen an offline user still shows as away.
const DefaultAwayWindow = 5 * time.Minute

// UserProfile is a participant with the skills they offer and want.
// Skills are embedded by value.
type UserProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Location      string    `json:"location,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	SkillsOffered []Skill   `json:"skills_offered"`
	SkillsWanted  []Skill   `json:"skills_wanted"`
	Online        bool      `json:"online"`
	LastSeen      time.Time `json:"last_seen"`
	JoinedAt      time.Time `json:"joined_at"`
}

// Offers reports whether skillID is among the skills u offers.
func (u UserProfile) Offers(skillID string) bool {
	for _, s := range u.SkillsOffered {
		if s.ID == skillID {
			return true
		}
	}
	return false
}

// Presence describes how recently a user was active.
type Presence string

// Presence values.
const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceOffline Presence = "offline"
)

// PresenceOf derives presence from the online flag and last-seen time. A
// non-positive window falls back to DefaultAwayWindow.
func PresenceOf(online bool, lastSeen, now time.Time, window time.Duration) Presence {
	if online {
		return PresenceOnline
	}
	if window <= 0 {
		window = DefaultAwayWindow
	}
	if !lastSeen.IsZero() && now.Sub(lastSeen) < window {
		return PresenceAway
	}
	return PresenceOffline
}
