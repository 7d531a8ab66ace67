package content

import "encoding/json"

// Item represents one reusable resume entry: a job or a project.
type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Org       string   `json:"company,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Priority  int      `json:"priority,omitempty"`
	Relevance string   `json:"relevance,omitempty"`
	Links     []Link   `json:"links,omitempty"`
	Bullets   []Bullet `json:"bullets"`
}

// Link represents a labeled URL attached to a project.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Bullet represents one bullet point. Bullets sharing a non-empty Group
// are mutually exclusive within their item.
type Bullet struct {
	Text  string `json:"text"`
	Group string `json:"group,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a {text, group} object.
func (b *Bullet) UnmarshalJSON(data []byte) (err error) {
	var text string
	if err = json.Unmarshal(data, &text); err == nil {
		b.Text = text
		b.Group = ""
		return err
	}

	type bulletAlias Bullet
	var alias bulletAlias
	err = json.Unmarshal(data, &alias)
	if err != nil {
		return err
	}

	*b = Bullet(alias)
	return err
}

// UnmarshalJSON handles the two catalog shapes: jobs carry "title" and
// projects carry "name"; projects may also carry a single legacy "link"
// instead of the "links" array.
func (item *Item) UnmarshalJSON(data []byte) (err error) {
	type itemAlias Item
	aux := struct {
		*itemAlias
		Name string `json:"name,omitempty"`
		Link string `json:"link,omitempty"`
	}{itemAlias: (*itemAlias)(item)}

	err = json.Unmarshal(data, &aux)
	if err != nil {
		return err
	}

	if item.Title == "" && aux.Name != "" {
		item.Title = aux.Name
	}
	if len(item.Links) == 0 && aux.Link != "" {
		item.Links = []Link{{Name: "github", URL: aux.Link}}
	}

	return err
}

// Education represents one education entry.
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Personal represents the per-run personal record.
type Personal struct {
	Name      string      `json:"name"`
	Contact   []string    `json:"contact"`
	Education []Education `json:"education,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
}

// Overrides holds caller-supplied values that replace loaded personal data.
type Overrides struct {
	Name      string
	Contact   []string
	Education []Education
}

// Merge returns a copy of p with any non-empty override applied.
func (p Personal) Merge(o Overrides) (merged Personal) {
	merged = p
	if o.Name != "" {
		merged.Name = o.Name
	}
	if len(o.Contact) > 0 {
		merged.Contact = o.Contact
	}
	if len(o.Education) > 0 {
		merged.Education = o.Education
	}
	return merged
}
