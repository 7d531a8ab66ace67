package selector

import (
	"sort"

	"github.com/dylandalal/resume-builder/pkg/content"
)

const (
	minExperiences = 4
	maxExperiences = 6

	jobBulletMin     = 4
	projectBulletMin = 3

	defaultJobs           = 4
	defaultProjects       = 3
	defaultProjectBullets = 2
)

// normalizePicks enforces the closed world: picks whose identifier is not
// in the catalog are dropped, as are out-of-range or duplicate bullet
// indices. Rewritten text stays aligned with its surviving index.
func normalizePicks(picks []Pick, catalog *content.Catalog) (valid []Pick) {
	seen := make(map[string]bool)

	for _, pick := range picks {
		item, found := catalog.Get(pick.ID)
		if !found || seen[pick.ID] {
			continue
		}
		seen[pick.ID] = true

		kept := Pick{ID: pick.ID}
		usedIdx := make(map[int]bool)
		for i, idx := range pick.BulletIndices {
			if idx < 0 || idx >= len(item.Bullets) || usedIdx[idx] {
				continue
			}
			usedIdx[idx] = true
			kept.BulletIndices = append(kept.BulletIndices, idx)
			if i < len(pick.Rewritten) {
				kept.Rewritten = append(kept.Rewritten, pick.Rewritten[i])
			} else if len(kept.Rewritten) > 0 {
				kept.Rewritten = append(kept.Rewritten, "")
			}
		}

		valid = append(valid, kept)
	}

	return valid
}

// normalizeSkills keeps only tags that were actually offered, preserving
// the model's ordering.
func normalizeSkills(chosen, offered []string) (valid []string) {
	available := make(map[string]bool, len(offered))
	for _, tag := range offered {
		available[tag] = true
	}

	seen := make(map[string]bool)
	for _, tag := range chosen {
		if available[tag] && !seen[tag] {
			seen[tag] = true
			valid = append(valid, tag)
		}
	}

	return valid
}

// filterGroups keeps only the first bullet of each group, in ranked
// order. Bullets without a group always survive.
func filterGroups(item content.Item, pick Pick) (filtered Pick) {
	filtered = Pick{ID: pick.ID}
	seenGroups := make(map[string]bool)

	for i, idx := range pick.BulletIndices {
		group := item.Bullets[idx].Group
		if group != "" && seenGroups[group] {
			continue
		}
		if group != "" {
			seenGroups[group] = true
		}
		filtered.BulletIndices = append(filtered.BulletIndices, idx)
		if i < len(pick.Rewritten) {
			filtered.Rewritten = append(filtered.Rewritten, pick.Rewritten[i])
		} else if len(filtered.Rewritten) > 0 {
			filtered.Rewritten = append(filtered.Rewritten, "")
		}
	}

	return filtered
}

// fillBullets pads a pick to the minimum bullet count from unused,
// group-compatible bullets, preserving the ranked prefix.
func fillBullets(item content.Item, pick Pick, minBullets int) (filled Pick) {
	filled = pick

	actualMin := minBullets
	if len(item.Bullets) < actualMin {
		actualMin = len(item.Bullets)
	}
	if len(filled.BulletIndices) >= actualMin {
		return filled
	}

	usedIdx := make(map[int]bool)
	usedGroups := make(map[string]bool)
	for _, idx := range filled.BulletIndices {
		usedIdx[idx] = true
		if group := item.Bullets[idx].Group; group != "" {
			usedGroups[group] = true
		}
	}

	for idx := range item.Bullets {
		if len(filled.BulletIndices) >= actualMin {
			break
		}
		if usedIdx[idx] {
			continue
		}
		group := item.Bullets[idx].Group
		if group != "" && usedGroups[group] {
			continue
		}
		filled.BulletIndices = append(filled.BulletIndices, idx)
		if len(filled.Rewritten) > 0 {
			filled.Rewritten = append(filled.Rewritten, "")
		}
		if group != "" {
			usedGroups[group] = true
		}
	}

	return filled
}

// truncatePick caps a pick at max bullets, keeping the ranked prefix.
func truncatePick(pick Pick, max int) (truncated Pick) {
	truncated = pick
	if len(truncated.BulletIndices) > max {
		truncated.BulletIndices = truncated.BulletIndices[:max]
	}
	if len(truncated.Rewritten) > len(truncated.BulletIndices) {
		truncated.Rewritten = truncated.Rewritten[:len(truncated.BulletIndices)]
	}
	return truncated
}

// applyBulletBudget applies the per-item bullet caps, keyed on how many
// experiences were selected: a dense five-or-more-job resume gets three
// bullets per job and two per project, anything smaller gets four and
// three.
func applyBulletBudget(result Result) (budgeted Result) {
	jobMax := jobBulletMin
	projectMax := projectBulletMin
	if len(result.Jobs) >= 5 {
		jobMax = 3
		projectMax = 2
	}

	budgeted = Result{Skills: result.Skills}
	for _, pick := range result.Jobs {
		budgeted.Jobs = append(budgeted.Jobs, truncatePick(pick, jobMax))
	}
	for _, pick := range result.Projects {
		budgeted.Projects = append(budgeted.Projects, truncatePick(pick, projectMax))
	}

	return budgeted
}

// padExperiences tops a sparse selection up to the experience minimum
// from the remaining catalog items, ranked by priority and most recent
// dates, with bullets in file order. Callers skip this for a fully
// empty selection, which stays empty.
func padExperiences(catalog *content.Catalog, picks []Pick) (padded []Pick) {
	padded = picks
	if len(padded) >= minExperiences {
		return padded
	}

	selected := make(map[string]bool, len(picks))
	for _, pick := range picks {
		selected[pick.ID] = true
	}

	for _, item := range rankByPriorityAndDate(catalog.Items()) {
		if len(padded) >= minExperiences {
			break
		}
		if selected[item.ID] || len(item.Bullets) == 0 {
			continue
		}

		pick := filterGroups(item, sequentialPick(item, jobBulletMin))
		pick = fillBullets(item, pick, jobBulletMin)
		padded = append(padded, pick)
		selected[item.ID] = true
	}

	return padded
}

// DefaultSelection constructs a reasonable selection entirely locally,
// used when the model returns no picks. Items are ranked by priority,
// then by most recent dates.
func DefaultSelection(jobs, projects *content.Catalog, skills []string) (result Result) {
	for _, item := range rankByPriorityAndDate(jobs.Items()) {
		if len(result.Jobs) >= defaultJobs {
			break
		}
		if len(item.Bullets) == 0 {
			continue
		}
		pick := filterGroups(item, sequentialPick(item, jobBulletMin))
		result.Jobs = append(result.Jobs, pick)
	}

	for _, item := range rankByPriorityAndDate(projects.Items()) {
		if len(result.Projects) >= defaultProjects {
			break
		}
		if len(item.Bullets) == 0 {
			continue
		}
		pick := filterGroups(item, sequentialPick(item, defaultProjectBullets))
		result.Projects = append(result.Projects, pick)
	}

	result.Skills = skills

	return result
}

// sequentialPick selects the first n bullets of an item in file order.
func sequentialPick(item content.Item, n int) (pick Pick) {
	pick = Pick{ID: item.ID}
	if len(item.Bullets) < n {
		n = len(item.Bullets)
	}
	for idx := 0; idx < n; idx++ {
		pick.BulletIndices = append(pick.BulletIndices, idx)
	}
	return pick
}

// rankByPriorityAndDate orders items by priority (higher first), then by
// end date and start date (most recent first).
func rankByPriorityAndDate(items []content.Item) (ranked []content.Item) {
	ranked = make([]content.Item, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority > ranked[j].Priority
		}
		if ranked[i].EndDate != ranked[j].EndDate {
			return dateLess(ranked[j].EndDate, ranked[i].EndDate)
		}
		return dateLess(ranked[j].StartDate, ranked[i].StartDate)
	})

	return ranked
}
