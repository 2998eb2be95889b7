package entity

type Badge struct {
	Entity
}

func NewBadge(selfURL, alternateURL string) *Badge {
	b := &Badge{Entity: newEntity("badge", selfURL, alternateURL)}
	b.declare("id", "name", "description", "level", "image")
	b.addProperty("count", 1)

	return b
}

func (b *Badge) ID() int {
	value, _ := b.Get("id")
	return asInt(value)
}

func (b *Badge) SetID(id int) *Badge {
	b.Set("id", id)
	return b
}

// Count is how many times the badge was earned; servers omit it for single
// awards.
func (b *Badge) Count() int {
	value, _ := b.Get("count")
	return asInt(value)
}

func (b *Badge) SetCount(count int) *Badge {
	b.Set("count", count)
	return b
}

func (b *Badge) Name() string {
	value, _ := b.Get("name")
	return asString(value)
}

func (b *Badge) SetName(name string) *Badge {
	b.Set("name", name)
	return b
}

func (b *Badge) Description() string {
	value, _ := b.Get("description")
	return asString(value)
}

func (b *Badge) SetDescription(description string) *Badge {
	b.Set("description", description)
	return b
}

func (b *Badge) Level() int {
	value, _ := b.Get("level")
	return asInt(value)
}

func (b *Badge) SetLevel(level int) *Badge {
	b.Set("level", level)
	return b
}

func (b *Badge) Image() string {
	value, _ := b.Get("image")
	return asString(value)
}

func (b *Badge) SetImage(image string) *Badge {
	b.Set("image", image)
	return b
}
