package render

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/dylandalal/resume-builder/pkg/content"
)

// ErrTemplateMalformed indicates a template missing one or more of the
// required placeholders.
var ErrTemplateMalformed = errors.New("template malformed")

// Template placeholders. A valid template contains each exactly once.
const (
	PlaceholderName       = "%%NAME%%"
	PlaceholderContact    = "%%CONTACT_LINE%%"
	PlaceholderSkills     = "%%SKILLS_BLOCKS%%"
	PlaceholderExperience = "%%EXPERIENCE_BLOCKS%%"
	PlaceholderProjects   = "%%PROJECT_BLOCKS%%"
	PlaceholderEducation  = "%%EDUCATION_BLOCKS%%"
)

//nolint:gochecknoglobals // Static placeholder list
var placeholders = []string{
	PlaceholderName,
	PlaceholderContact,
	PlaceholderSkills,
	PlaceholderExperience,
	PlaceholderProjects,
	PlaceholderEducation,
}

// Section is one fully resolved experience or project entry. Bullets
// hold final display text, tailored or verbatim, already in order.
type Section struct {
	Title     string
	Org       string
	Location  string
	StartDate string
	EndDate   string
	Links     []content.Link
	Bullets   []string
}

// Document holds everything the renderer needs, fully resolved. No
// identifiers, no catalogs: callers resolve selections before rendering.
type Document struct {
	Name       string
	Contact    []string
	Skills     []string
	Experience []Section
	Projects   []Section
	Education  []content.Education
}

// Render fills the template's placeholders from the document. Output is
// deterministic: the same template and document always produce the same
// bytes. A template missing any placeholder fails with
// ErrTemplateMalformed before any substitution happens.
func Render(template string, doc Document) (output string, err error) {
	for _, placeholder := range placeholders {
		if strings.Count(template, placeholder) != 1 {
			err = errors.Wrapf(ErrTemplateMalformed, "placeholder %s must appear exactly once", placeholder)
			return output, err
		}
	}

	output = template
	output = strings.Replace(output, PlaceholderName, Escape(doc.Name), 1)
	output = strings.Replace(output, PlaceholderContact, contactLine(doc.Contact), 1)
	output = strings.Replace(output, PlaceholderSkills, skillsBlock(doc.Skills), 1)
	output = strings.Replace(output, PlaceholderExperience, sectionBlocks(doc.Experience), 1)
	output = strings.Replace(output, PlaceholderProjects, sectionBlocks(doc.Projects), 1)
	output = strings.Replace(output, PlaceholderEducation, educationBlock(doc.Education), 1)

	return output, err
}

// contactLine joins contact entries with " | ". Email addresses and
// URLs become \href links, anything else renders as escaped text.
func contactLine(contact []string) (line string) {
	var parts []string

	for _, entry := range contact {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		switch {
		case strings.Contains(entry, "@") && !strings.Contains(entry, " "):
			parts = append(parts, `\href{mailto:`+Escape(entry)+`}{`+Escape(entry)+`}`)
		case strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://"):
			parts = append(parts, `\href{`+EscapeURL(entry)+`}{`+Escape(displayURL(entry))+`}`)
		default:
			parts = append(parts, Escape(entry))
		}
	}

	line = strings.Join(parts, " | ")
	return line
}

// displayURL strips the scheme for link display.
func displayURL(url string) (display string) {
	display = strings.TrimPrefix(url, "https://")
	display = strings.TrimPrefix(display, "http://")
	display = strings.TrimSuffix(display, "/")
	return display
}

func skillsBlock(skills []string) (block string) {
	if len(skills) == 0 {
		return ""
	}
	block = `\textbf{Skills}: ` + Escape(strings.Join(skills, ", ")) + ` \\`
	return block
}

// sectionBlocks renders experience or project entries as a header line
// followed by an itemize list. Header: \textbf{Title} | Org (Location),
// links for projects, dates pushed right with \hfill.
func sectionBlocks(sections []Section) (block string) {
	var blocks []string

	for _, section := range sections {
		header := `\textbf{` + Escape(section.Title) + `}`
		if section.Org != "" {
			header += ` | ` + Escape(section.Org)
		}
		if section.Location != "" {
			header += ` (` + Escape(section.Location) + `)`
		}
		for _, link := range section.Links {
			if link.URL == "" {
				continue
			}
			label := link.Name
			if label == "" {
				label = "link"
			}
			header += ` | \href{` + EscapeURL(link.URL) + `}{` + Escape(label) + `}`
		}
		if dates := dateRange(section.StartDate, section.EndDate); dates != "" {
			header += ` \hfill ` + dates
		}
		header += ` \\`

		lines := []string{header}
		lines = append(lines, itemize(section.Bullets)...)
		lines = append(lines, "")

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	block = strings.Join(blocks, "\n")
	return block
}

func educationBlock(education []content.Education) (block string) {
	var lines []string

	for _, entry := range education {
		var headerParts []string
		if entry.Degree != "" {
			headerParts = append(headerParts, `\textbf{`+Escape(entry.Degree)+`}`)
		}
		if entry.Institution != "" {
			headerParts = append(headerParts, Escape(entry.Institution))
		}

		header := strings.Join(headerParts, " ")
		if dates := dateRange(entry.StartDate, entry.EndDate); dates != "" {
			header += ` \hfill ` + dates
		}
		header += ` \\`

		lines = append(lines, header)
		lines = append(lines, itemize(entry.Highlights)...)
	}

	block = strings.Join(lines, "\n")
	return block
}

// itemize wraps bullet texts in an itemize environment, skipping empty
// entries. No environment is emitted when nothing remains, since an
// empty itemize is a LaTeX error.
func itemize(bullets []string) (lines []string) {
	var items []string
	for _, bullet := range bullets {
		if bullet == "" {
			continue
		}
		items = append(items, `  \item `+Escape(bullet))
	}
	if len(items) == 0 {
		return lines
	}

	lines = append(lines, `\begin{itemize}`)
	lines = append(lines, items...)
	lines = append(lines, `\end{itemize}`)
	return lines
}

func dateRange(start, end string) (dates string) {
	switch {
	case start != "" && end != "":
		dates = Escape(start) + ` -- ` + Escape(end)
	case start != "":
		dates = Escape(start)
	case end != "":
		dates = Escape(end)
	}
	return dates
}
