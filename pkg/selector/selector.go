// Package selector decides which catalog items and skill tags are
// relevant to one job description, by way of a completion model.
package selector

import (
	"context"

	"github.com/dylandalal/resume-builder/pkg/content"
	"github.com/pkg/errors"
)

// Selector runs the selection calls against a completion client.
type Selector struct {
	client CompletionClient
}

// New creates a Selector.
func New(client CompletionClient) (s *Selector) {
	s = &Selector{client: client}
	return s
}

// Select asks the model which experiences, projects and skill tags fit
// the job description. The returned result only ever references
// identifiers, bullet indices and tags present in the request; an empty
// result is valid and means the model found nothing relevant.
func (s *Selector) Select(ctx context.Context, req Request) (result Result, err error) {
	// Experiences and skills share one call
	var response string
	response, err = s.client.Complete(ctx, buildExperienceSystemPrompt(), buildExperienceUserPrompt(req.JobDescription, req.Jobs, req.Skills))
	if err != nil {
		err = errors.Wrap(err, "experience selection")
		return result, err
	}

	var jobPicks []Pick
	jobPicks, err = parsePicks(response, "selected_jobs")
	if err != nil {
		err = errors.Wrap(err, "experience selection")
		return result, err
	}

	var skills []string
	skills, err = parseSkills(response)
	if err != nil {
		err = errors.Wrap(err, "skill selection")
		return result, err
	}

	result.Jobs = normalizePicks(jobPicks, req.Jobs)
	result.Skills = normalizeSkills(skills, req.Skills)

	// Force-include required jobs the model skipped
	result.Jobs = s.ensureRequired(ctx, req.JobDescription, req.Jobs, result.Jobs, req.RequiredJobs, jobBulletMin)

	result.Jobs = groomPicks(req.Jobs, result.Jobs, jobBulletMin)

	// A sparse but non-empty selection gets padded up to the minimum
	// from the rest of the catalog. A fully empty selection stays
	// empty so the caller can decide the fallback.
	if len(result.Jobs) > 0 {
		result.Jobs = padExperiences(req.Jobs, result.Jobs)
	}

	// A dense resume leaves less room for projects
	numProjects := defaultProjects
	if len(result.Jobs) >= maxExperiences {
		numProjects = 2
	}

	response, err = s.client.Complete(ctx, buildProjectSystemPrompt(numProjects), buildProjectUserPrompt(req.JobDescription, req.Projects))
	if err != nil {
		err = errors.Wrap(err, "project selection")
		return result, err
	}

	var projectPicks []Pick
	projectPicks, err = parsePicks(response, "selected_projects")
	if err != nil {
		err = errors.Wrap(err, "project selection")
		return result, err
	}

	result.Projects = normalizePicks(projectPicks, req.Projects)
	result.Projects = s.ensureRequired(ctx, req.JobDescription, req.Projects, result.Projects, req.RequiredProjects, projectBulletMin)
	result.Projects = groomPicks(req.Projects, result.Projects, projectBulletMin)

	result = applyBulletBudget(result)

	return result, err
}

// ensureRequired appends any caller-required item the model omitted,
// asking the model to rank its bullets and falling back to file order if
// that call fails.
func (s *Selector) ensureRequired(ctx context.Context, jobDescription string, catalog *content.Catalog, picks []Pick, required []string, maxBullets int) (ensured []Pick) {
	ensured = picks

	selected := make(map[string]bool, len(picks))
	for _, pick := range picks {
		selected[pick.ID] = true
	}

	for _, id := range required {
		if selected[id] {
			continue
		}
		item, found := catalog.Get(id)
		if !found || len(item.Bullets) == 0 {
			continue
		}

		indices := s.rankBullets(ctx, jobDescription, item, maxBullets)
		pick := Pick{ID: id, BulletIndices: indices}
		if len(pick.BulletIndices) == 0 {
			pick = sequentialPick(item, maxBullets)
		}

		ensured = append(ensured, normalizePicks([]Pick{pick}, catalog)...)
		selected[id] = true
	}

	return ensured
}

// rankBullets asks the model to rank one item's bullets. Failures return
// no indices; the caller falls back to file order.
func (s *Selector) rankBullets(ctx context.Context, jobDescription string, item content.Item, maxBullets int) (indices []int) {
	response, err := s.client.Complete(ctx, buildRankSystemPrompt(maxBullets), buildRankUserPrompt(jobDescription, item))
	if err != nil {
		return indices
	}

	indices, err = parseBulletIndices(response)
	if err != nil {
		indices = nil
		return indices
	}

	if len(indices) > maxBullets {
		indices = indices[:maxBullets]
	}

	return indices
}

// groomPicks applies group filtering and bullet fill to every pick.
// Picks left without bullets are dropped.
func groomPicks(catalog *content.Catalog, picks []Pick, minBullets int) (groomed []Pick) {
	for _, pick := range picks {
		item, found := catalog.Get(pick.ID)
		if !found {
			continue
		}
		pick = filterGroups(item, pick)
		pick = fillBullets(item, pick, minBullets)
		if len(pick.BulletIndices) == 0 {
			continue
		}
		groomed = append(groomed, pick)
	}
	return groomed
}
