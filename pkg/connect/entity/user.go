package entity

import "time"

// User carries the union of every field the wire format ever exposed for a
// foaf:Person, including the linked online accounts and the embedded badges,
// memberships and projects indexes.
type User struct {
	Entity
}

func NewUser(selfURL, alternateURL string) *User {
	u := &User{Entity: newEntity("user", selfURL, alternateURL)}
	u.declare(
		"username", "uuid", "name", "image", "jobPosition", "biography",
		"birthdate", "city", "country", "company", "blogUrl", "feedUrl",
		"url", "email", "joinedAt", "githubUsername", "twitterUsername",
		"linkedInUrl", "facebookUid", "badges", "memberships", "projects",
	)
	u.addProperty("additionalEmails", []string{})

	return u
}

func (u *User) Username() string {
	value, _ := u.Get("username")
	return asString(value)
}

func (u *User) SetUsername(username string) *User {
	u.Set("username", username)
	return u
}

func (u *User) UUID() string {
	value, _ := u.Get("uuid")
	return asString(value)
}

func (u *User) SetUUID(uuid string) *User {
	u.Set("uuid", uuid)
	return u
}

func (u *User) Name() string {
	value, _ := u.Get("name")
	return asString(value)
}

func (u *User) SetName(name string) *User {
	u.Set("name", name)
	return u
}

func (u *User) Image() string {
	value, _ := u.Get("image")
	return asString(value)
}

func (u *User) SetImage(image string) *User {
	u.Set("image", image)
	return u
}

func (u *User) JobPosition() string {
	value, _ := u.Get("jobPosition")
	return asString(value)
}

func (u *User) SetJobPosition(jobPosition string) *User {
	u.Set("jobPosition", jobPosition)
	return u
}

func (u *User) Biography() string {
	value, _ := u.Get("biography")
	return asString(value)
}

func (u *User) SetBiography(biography string) *User {
	u.Set("biography", biography)
	return u
}

// Birthdate is kept as the wire value, an ISO-8601 date string.
func (u *User) Birthdate() string {
	value, _ := u.Get("birthdate")
	return asString(value)
}

func (u *User) SetBirthdate(birthdate string) *User {
	u.Set("birthdate", birthdate)
	return u
}

func (u *User) City() string {
	value, _ := u.Get("city")
	return asString(value)
}

func (u *User) SetCity(city string) *User {
	u.Set("city", city)
	return u
}

func (u *User) Country() string {
	value, _ := u.Get("country")
	return asString(value)
}

func (u *User) SetCountry(country string) *User {
	u.Set("country", country)
	return u
}

func (u *User) Company() string {
	value, _ := u.Get("company")
	return asString(value)
}

func (u *User) SetCompany(company string) *User {
	u.Set("company", company)
	return u
}

func (u *User) BlogURL() string {
	value, _ := u.Get("blogUrl")
	return asString(value)
}

func (u *User) SetBlogURL(url string) *User {
	u.Set("blogUrl", url)
	return u
}

func (u *User) FeedURL() string {
	value, _ := u.Get("feedUrl")
	return asString(value)
}

func (u *User) SetFeedURL(url string) *User {
	u.Set("feedUrl", url)
	return u
}

func (u *User) URL() string {
	value, _ := u.Get("url")
	return asString(value)
}

func (u *User) SetURL(url string) *User {
	u.Set("url", url)
	return u
}

func (u *User) Email() string {
	value, _ := u.Get("email")
	return asString(value)
}

func (u *User) SetEmail(email string) *User {
	u.Set("email", email)
	return u
}

func (u *User) AdditionalEmails() []string {
	value, _ := u.Get("additionalEmails")
	emails, _ := value.([]string)
	return emails
}

func (u *User) SetAdditionalEmails(emails []string) *User {
	u.Set("additionalEmails", emails)
	return u
}

func (u *User) JoinedAt() time.Time {
	value, _ := u.Get("joinedAt")
	joinedAt, _ := value.(time.Time)
	return joinedAt
}

func (u *User) SetJoinedAt(joinedAt time.Time) *User {
	u.Set("joinedAt", joinedAt)
	return u
}

func (u *User) GithubUsername() string {
	value, _ := u.Get("githubUsername")
	return asString(value)
}

func (u *User) SetGithubUsername(username string) *User {
	u.Set("githubUsername", username)
	return u
}

func (u *User) TwitterUsername() string {
	value, _ := u.Get("twitterUsername")
	return asString(value)
}

func (u *User) SetTwitterUsername(username string) *User {
	u.Set("twitterUsername", username)
	return u
}

func (u *User) LinkedInURL() string {
	value, _ := u.Get("linkedInUrl")
	return asString(value)
}

func (u *User) SetLinkedInURL(url string) *User {
	u.Set("linkedInUrl", url)
	return u
}

func (u *User) FacebookUID() string {
	value, _ := u.Get("facebookUid")
	return asString(value)
}

func (u *User) SetFacebookUID(uid string) *User {
	u.Set("facebookUid", uid)
	return u
}

func (u *User) Badges() *Index {
	value, _ := u.Get("badges")
	badges, _ := value.(*Index)
	return badges
}

func (u *User) SetBadges(badges *Index) *User {
	u.Set("badges", badges)
	return u
}

func (u *User) Memberships() *Index {
	value, _ := u.Get("memberships")
	memberships, _ := value.(*Index)
	return memberships
}

func (u *User) SetMemberships(memberships *Index) *User {
	u.Set("memberships", memberships)
	return u
}

func (u *User) Projects() *Index {
	value, _ := u.Get("projects")
	projects, _ := value.(*Index)
	return projects
}

func (u *User) SetProjects(projects *Index) *User {
	u.Set("projects", projects)
	return u
}
