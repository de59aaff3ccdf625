package session

import (
	"time"

	"github.com/uptrace/bun"
)

// Session is a row of workout_sessions. member_id carries no foreign key.
type Session struct {
	bun.BaseModel `bun:"table:workout_sessions,alias:ws"`

	ID          int64     `bun:"session_id,pk,autoincrement" json:"session_id"`
	MemberID    int64     `bun:"member_id,notnull" json:"member_id"`
	Date        time.Time `bun:"session_date,type:timestamp,notnull" json:"session_date"`
	WorkoutType string    `bun:"workout_type,notnull" json:"workout_type"`
}

// WithMemberName is a session joined with the name of its member.
type WithMemberName struct {
	ID          int64     `bun:"session_id" json:"session_id"`
	MemberName  string    `bun:"member_name" json:"member_name"`
	Date        time.Time `bun:"session_date" json:"session_date"`
	WorkoutType string    `bun:"workout_type" json:"workout_type"`
}

type Input struct {
	MemberID    int64     `json:"member_id" validate:"required,gt=0"`
	Date        time.Time `json:"session_date" validate:"required"`
	WorkoutType string    `json:"workout_type" validate:"required"`
}

func (in Input) toSession(id int64) *Session {
	return &Session{
		ID:          id,
		MemberID:    in.MemberID,
		Date:        in.Date,
		WorkoutType: in.WorkoutType,
	}
}
