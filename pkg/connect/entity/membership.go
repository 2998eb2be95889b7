package entity

// Membership links a user to a club, as seen from the user's side.
type Membership struct {
	Entity
}

func NewMembership() *Membership {
	m := &Membership{Entity: newEntity("membership", "", "")}
	m.declare("club", "isPublic", "isOwner")

	return m
}

func (m *Membership) Club() *Club {
	value, _ := m.Get("club")
	club, _ := value.(*Club)
	return club
}

func (m *Membership) SetClub(club *Club) *Membership {
	m.Set("club", club)
	return m
}

func (m *Membership) IsPublic() bool {
	value, _ := m.Get("isPublic")
	return asBool(value)
}

func (m *Membership) SetIsPublic(isPublic bool) *Membership {
	m.Set("isPublic", isPublic)
	return m
}

func (m *Membership) IsOwner() bool {
	value, _ := m.Get("isOwner")
	return asBool(value)
}

func (m *Membership) SetIsOwner(isOwner bool) *Membership {
	m.Set("isOwner", isOwner)
	return m
}
