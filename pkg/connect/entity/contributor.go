package entity

// Contributor is one developer's contribution record inside a project's
// contributors index.
type Contributor struct {
	Entity
}

func NewContributor() *Contributor {
	c := &Contributor{Entity: newEntity("contributor", "", "")}
	c.declare("user", "linesAdded", "linesDeleted", "commits", "rank")

	return c
}

func (c *Contributor) User() *User {
	value, _ := c.Get("user")
	user, _ := value.(*User)
	return user
}

func (c *Contributor) SetUser(user *User) *Contributor {
	c.Set("user", user)
	return c
}

func (c *Contributor) LinesAdded() int {
	value, _ := c.Get("linesAdded")
	return asInt(value)
}

func (c *Contributor) SetLinesAdded(lines int) *Contributor {
	c.Set("linesAdded", lines)
	return c
}

func (c *Contributor) LinesDeleted() int {
	value, _ := c.Get("linesDeleted")
	return asInt(value)
}

func (c *Contributor) SetLinesDeleted(lines int) *Contributor {
	c.Set("linesDeleted", lines)
	return c
}

func (c *Contributor) Commits() int {
	value, _ := c.Get("commits")
	return asInt(value)
}

func (c *Contributor) SetCommits(commits int) *Contributor {
	c.Set("commits", commits)
	return c
}

func (c *Contributor) Rank() int {
	value, _ := c.Get("rank")
	return asInt(value)
}

func (c *Contributor) SetRank(rank int) *Contributor {
	c.Set("rank", rank)
	return c
}
