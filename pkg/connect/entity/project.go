package entity

// Project category codes. Earlier generations of the wire format redefined
// this enumeration several times; this table is the final one and is the only
// mapping the client understands.
const (
	ProjectTypeWebsite       = 0
	ProjectTypeLibrary       = 1
	ProjectTypeSymfonyBundle = 2
)

var projectTypeLabels = map[int]string{
	ProjectTypeWebsite:       "Website",
	ProjectTypeLibrary:       "Library",
	ProjectTypeSymfonyBundle: "Symfony Bundle",
}

func ProjectTypeLabel(code int) (string, bool) {
	label, ok := projectTypeLabels[code]
	return label, ok
}

func ProjectTypeFromLabel(label string) (int, bool) {
	for code, candidate := range projectTypeLabels {
		if candidate == label {
			return code, true
		}
	}

	return 0, false
}

type Project struct {
	Entity
}

func NewProject(selfURL, alternateURL string) *Project {
	p := &Project{Entity: newEntity("project", selfURL, alternateURL)}
	p.declare(
		"name", "uuid", "slug", "isPrivate", "description", "image", "type",
		"url", "repositoryUrl", "pictureFile", "contributors",
	)

	return p
}

func (p *Project) Name() string {
	value, _ := p.Get("name")
	return asString(value)
}

func (p *Project) SetName(name string) *Project {
	p.Set("name", name)
	return p
}

func (p *Project) UUID() string {
	value, _ := p.Get("uuid")
	return asString(value)
}

func (p *Project) SetUUID(uuid string) *Project {
	p.Set("uuid", uuid)
	return p
}

func (p *Project) Slug() string {
	value, _ := p.Get("slug")
	return asString(value)
}

func (p *Project) SetSlug(slug string) *Project {
	p.Set("slug", slug)
	return p
}

func (p *Project) IsPrivate() bool {
	value, _ := p.Get("isPrivate")
	return asBool(value)
}

func (p *Project) SetIsPrivate(isPrivate bool) *Project {
	p.Set("isPrivate", isPrivate)
	return p
}

func (p *Project) Description() string {
	value, _ := p.Get("description")
	return asString(value)
}

func (p *Project) SetDescription(description string) *Project {
	p.Set("description", description)
	return p
}

func (p *Project) Image() string {
	value, _ := p.Get("image")
	return asString(value)
}

func (p *Project) SetImage(image string) *Project {
	p.Set("image", image)
	return p
}

func (p *Project) Type() int {
	value, _ := p.Get("type")
	return asInt(value)
}

func (p *Project) SetType(projectType int) *Project {
	p.Set("type", projectType)
	return p
}

// TextualType translates the category code back to its wire label.
func (p *Project) TextualType() string {
	label, _ := ProjectTypeLabel(p.Type())
	return label
}

func (p *Project) URL() string {
	value, _ := p.Get("url")
	return asString(value)
}

func (p *Project) SetURL(url string) *Project {
	p.Set("url", url)
	return p
}

func (p *Project) RepositoryURL() string {
	value, _ := p.Get("repositoryUrl")
	return asString(value)
}

func (p *Project) SetRepositoryURL(url string) *Project {
	p.Set("repositoryUrl", url)
	return p
}

func (p *Project) PictureFile() string {
	value, _ := p.Get("pictureFile")
	return asString(value)
}

func (p *Project) SetPictureFile(pictureFile string) *Project {
	p.Set("pictureFile", pictureFile)
	return p
}

func (p *Project) Contributors() *Index {
	value, _ := p.Get("contributors")
	contributors, _ := value.(*Index)
	return contributors
}

func (p *Project) SetContributors(contributors *Index) *Project {
	p.Set("contributors", contributors)
	return p
}
