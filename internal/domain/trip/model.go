package trip

import "time"

type Trip struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   string    `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type TripMember struct {
	TripID   string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	Trip Trip `gorm:"foreignKey:TripID;references:ID;constraint:OnDelete:CASCADE"`
}

// Member is a trip member joined with their user profile.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateTripInput struct {
	Name        string
	Description string
	CreatedBy   string
	MemberIDs   []string
}
