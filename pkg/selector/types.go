package selector

import (
	"github.com/dylandalal/resume-builder/pkg/content"
	"github.com/pkg/errors"
)

// ErrSelectionFailed indicates the completion service could not be reached
// or returned an error.
var ErrSelectionFailed = errors.New("selection request failed")

// ErrSelectionParse indicates the model response could not be parsed into
// the expected structure.
var ErrSelectionParse = errors.New("selection response not parseable")

// Request carries everything the model sees for one run.
type Request struct {
	JobDescription   string
	Jobs             *content.Catalog
	Projects         *content.Catalog
	Skills           []string
	RequiredJobs     []string
	RequiredProjects []string
}

// Pick is one chosen catalog item with its bullets in ranked order
// (most relevant first). Rewritten, when present, carries tailored
// phrasing aligned with BulletIndices.
type Pick struct {
	ID            string
	BulletIndices []int
	Rewritten     []string
}

// Result is the subset of catalog identifiers and skill tags judged
// relevant to one job description. Identifiers are always drawn from the
// request catalogs; anything else the model invents is dropped.
type Result struct {
	Jobs     []Pick
	Projects []Pick
	Skills   []string
}

// Empty reports whether the selection contains no items at all.
func (r Result) Empty() (empty bool) {
	empty = len(r.Jobs) == 0 && len(r.Projects) == 0
	return empty
}
