package entity

// Member links a user to a club, as seen from the club's side.
type Member struct {
	Entity
}

func NewMember() *Member {
	m := &Member{Entity: newEntity("member", "", "")}
	m.declare("user", "isMembershipPublic", "isOwner")

	return m
}

func (m *Member) User() *User {
	value, _ := m.Get("user")
	user, _ := value.(*User)
	return user
}

func (m *Member) SetUser(user *User) *Member {
	m.Set("user", user)
	return m
}

func (m *Member) IsMembershipPublic() bool {
	value, _ := m.Get("isMembershipPublic")
	return asBool(value)
}

func (m *Member) SetIsMembershipPublic(isPublic bool) *Member {
	m.Set("isMembershipPublic", isPublic)
	return m
}

func (m *Member) IsOwner() bool {
	value, _ := m.Get("isOwner")
	return asBool(value)
}

func (m *Member) SetIsOwner(isOwner bool) *Member {
	m.Set("isOwner", isOwner)
	return m
}
