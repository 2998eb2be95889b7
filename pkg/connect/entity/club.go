package entity

// Club category codes. The label table below is the authoritative mapping
// between the wire category labels and these codes.
const (
	ClubTypeCompany   = 1
	ClubTypeUserGroup = 2
	ClubTypeFun       = 3
	ClubTypeTeam      = 4
)

var clubTypeLabels = map[int]string{
	ClubTypeCompany:   "Company",
	ClubTypeUserGroup: "Local user group",
	ClubTypeFun:       "Just for fun",
	ClubTypeTeam:      "Team of developers",
}

func ClubTypeLabel(code int) (string, bool) {
	label, ok := clubTypeLabels[code]
	return label, ok
}

func ClubTypeFromLabel(label string) (int, bool) {
	for code, candidate := range clubTypeLabels {
		if candidate == label {
			return code, true
		}
	}

	return 0, false
}

type Club struct {
	Entity
}

func NewClub(selfURL, alternateURL string) *Club {
	c := &Club{Entity: newEntity("club", selfURL, alternateURL)}
	c.declare(
		"name", "uuid", "slug", "type", "email", "description", "city",
		"country", "url", "feedUrl", "image", "cumulatedBadges", "badges",
	)
	c.addProperty("members", []any{})

	return c
}

func (c *Club) Name() string {
	value, _ := c.Get("name")
	return asString(value)
}

func (c *Club) SetName(name string) *Club {
	c.Set("name", name)
	return c
}

func (c *Club) UUID() string {
	value, _ := c.Get("uuid")
	return asString(value)
}

func (c *Club) SetUUID(uuid string) *Club {
	c.Set("uuid", uuid)
	return c
}

func (c *Club) Slug() string {
	value, _ := c.Get("slug")
	return asString(value)
}

func (c *Club) SetSlug(slug string) *Club {
	c.Set("slug", slug)
	return c
}

func (c *Club) Type() int {
	value, _ := c.Get("type")
	return asInt(value)
}

func (c *Club) SetType(clubType int) *Club {
	c.Set("type", clubType)
	return c
}

// TextualType translates the category code back to its wire label.
func (c *Club) TextualType() string {
	label, _ := ClubTypeLabel(c.Type())
	return label
}

func (c *Club) Email() string {
	value, _ := c.Get("email")
	return asString(value)
}

func (c *Club) SetEmail(email string) *Club {
	c.Set("email", email)
	return c
}

func (c *Club) Description() string {
	value, _ := c.Get("description")
	return asString(value)
}

func (c *Club) SetDescription(description string) *Club {
	c.Set("description", description)
	return c
}

func (c *Club) City() string {
	value, _ := c.Get("city")
	return asString(value)
}

func (c *Club) SetCity(city string) *Club {
	c.Set("city", city)
	return c
}

func (c *Club) Country() string {
	value, _ := c.Get("country")
	return asString(value)
}

func (c *Club) SetCountry(country string) *Club {
	c.Set("country", country)
	return c
}

func (c *Club) URL() string {
	value, _ := c.Get("url")
	return asString(value)
}

func (c *Club) SetURL(url string) *Club {
	c.Set("url", url)
	return c
}

func (c *Club) FeedURL() string {
	value, _ := c.Get("feedUrl")
	return asString(value)
}

func (c *Club) SetFeedURL(url string) *Club {
	c.Set("feedUrl", url)
	return c
}

func (c *Club) Image() string {
	value, _ := c.Get("image")
	return asString(value)
}

func (c *Club) SetImage(image string) *Club {
	c.Set("image", image)
	return c
}

func (c *Club) CumulatedBadges() *Index {
	value, _ := c.Get("cumulatedBadges")
	badges, _ := value.(*Index)
	return badges
}

func (c *Club) SetCumulatedBadges(badges *Index) *Club {
	c.Set("cumulatedBadges", badges)
	return c
}

func (c *Club) Badges() *Index {
	value, _ := c.Get("badges")
	badges, _ := value.(*Index)
	return badges
}

func (c *Club) SetBadges(badges *Index) *Club {
	c.Set("badges", badges)
	return c
}

func (c *Club) Members() []*Member {
	value, _ := c.Get("members")
	raw, _ := value.([]any)

	members := make([]*Member, 0, len(raw))
	for _, item := range raw {
		if member, ok := item.(*Member); ok {
			members = append(members, member)
		}
	}

	return members
}

func (c *Club) AddMember(member *Member) *Club {
	c.Add("members", member)
	return c
}
