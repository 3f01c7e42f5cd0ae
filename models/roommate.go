package models

import "time"

// Habits captures lifestyle booleans plus a 1-5 cleanliness rating.
type Habits struct {
	Smoking     bool `bson:"smoking" json:"smoking"`
	Drinking    bool `bson:"drinking" json:"drinking"`
	Pets        bool `bson:"pets" json:"pets"`
	Cleanliness int  `bson:"cleanliness" json:"cleanliness"` // 1-5
}

// RoommateProfile holds one user's roommate preferences. One per user.
type RoommateProfile struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Age       int       `bson:"age" json:"age"`
	Budget    float64   `bson:"budget" json:"budget"` // monthly, currency units
	Habits    Habits    `bson:"habits" json:"habits"`
	VibeScore int       `bson:"vibe_score" json:"vibe_score"` // 1-10
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RoommateMatch pairs a candidate profile with its compatibility score.
type RoommateMatch struct {
	Profile RoommateProfile `json:"profile"`
	User    UserSummary     `json:"user"`
	Score   int             `json:"compatibilityScore"`
}
