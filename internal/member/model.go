package member

import "github.com/uptrace/bun"

type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID             int64  `bun:"member_id,pk,autoincrement" json:"member_id"`
	Name           string `bun:"member_name,notnull" json:"member_name"`
	Email          string `bun:"email,notnull" json:"email"`
	Phone          string `bun:"phone,notnull" json:"phone"`
	MembershipType string `bun:"membership_type,notnull" json:"membership_type"`
}

// Input is the accepted body of create and update requests. The id is
// assigned by the store and is never read from a body.
type Input struct {
	Name           string `json:"member_name" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	MembershipType string `json:"membership_type" validate:"required"`
}

func (in Input) toMember(id int64) *Member {
	return &Member{
		ID:             id,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		MembershipType: in.MembershipType,
	}
}
