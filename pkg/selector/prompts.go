package selector

import (
	"encoding/json"
	"fmt"

	"github.com/dylandalal/resume-builder/pkg/content"
)

// buildExperienceSystemPrompt creates the system prompt for the
// experience-selection call.
func buildExperienceSystemPrompt() (prompt string) {
	prompt = "You are an assistant that selects relevant resume experiences from provided data. " +
		"Return JSON with keys: selected_jobs (list of {id, bullet_indices, rewritten_bullets}) and skills (list of strings). " +
		fmt.Sprintf("CRITICAL: You MUST select at least %d experiences (%d-%d total) from the provided jobs. ", minExperiences, minExperiences, maxExperiences) +
		"If fewer than that are provided, select all of them. " +
		fmt.Sprintf("For each relevant job, rank the top %d bullets in terms of relevance to the role, with the most relevant bullets at the top. ", jobBulletMin) +
		"The bullet_indices array should contain the indices in RANKED ORDER (most relevant first), NOT in original order. " +
		"For example, if bullets [0, 1, 2, 3, 4] exist and bullets 2 and 4 are most relevant, return [2, 4, 0, 1] not [0, 1, 2, 3]. " +
		"rewritten_bullets is optional: when present it must align one-to-one with bullet_indices and contain short rewordings tailored to the role. " +
		"skills must be a subset of the provided skills, ordered most relevant first. " +
		"Generously keyword match these bullets - they should be clearly relevant to the role. " +
		"Only use bullets by index and skills by name from the given entries."
	return prompt
}

// buildProjectSystemPrompt creates the system prompt for the
// project-selection call.
func buildProjectSystemPrompt(numProjects int) (prompt string) {
	prompt = "You are an assistant that selects relevant resume projects from provided data. " +
		"Return JSON with key: selected_projects (list of {id, bullet_indices, rewritten_bullets}). " +
		fmt.Sprintf("Select the %d most relevant projects to the job description. ", numProjects) +
		"For each relevant project, rank the bullets in terms of relevance to the role, with the most relevant bullets at the top. " +
		"Completed projects should be slightly higher priority than ongoing projects if they're relevant. " +
		"Generously keyword match these bullets - they should be clearly relevant to the role. " +
		"If there's nothing relevant for a project, don't include it. " +
		"Only use bullets by index from the given entries."
	return prompt
}

// buildRankSystemPrompt creates the system prompt for ranking the bullets
// of a single required item.
func buildRankSystemPrompt(maxBullets int) (prompt string) {
	prompt = "You are an assistant that ranks resume bullets by relevance to a job description. " +
		"Return JSON with key: bullet_indices (array of integers). " +
		fmt.Sprintf("Rank the top %d bullets from the provided entry in terms of relevance to the role, with the most relevant bullets at the top. ", maxBullets) +
		"The bullet_indices array should contain the indices in RANKED ORDER (most relevant first), NOT in original order. " +
		"Only use bullets by index from the given entry."
	return prompt
}

// buildExperienceUserPrompt serializes the job description, jobs catalog
// and candidate skill tags for the model.
func buildExperienceUserPrompt(jobDescription string, jobs *content.Catalog, skills []string) (prompt string) {
	payload := map[string]interface{}{
		"job_description": jobDescription,
		"jobs":            itemsToMaps(jobs.Items()),
		"skills":          skills,
	}
	data, _ := json.Marshal(payload)
	prompt = string(data)
	return prompt
}

// buildProjectUserPrompt serializes the job description and projects
// catalog for the model.
func buildProjectUserPrompt(jobDescription string, projects *content.Catalog) (prompt string) {
	payload := map[string]interface{}{
		"job_description": jobDescription,
		"projects":        itemsToMaps(projects.Items()),
	}
	data, _ := json.Marshal(payload)
	prompt = string(data)
	return prompt
}

// buildRankUserPrompt serializes one entry for bullet ranking.
func buildRankUserPrompt(jobDescription string, item content.Item) (prompt string) {
	payload := map[string]interface{}{
		"job_description": jobDescription,
		"entry":           itemToMap(item),
	}
	data, _ := json.Marshal(payload)
	prompt = string(data)
	return prompt
}

func itemsToMaps(items []content.Item) (maps []map[string]interface{}) {
	maps = make([]map[string]interface{}, len(items))
	for i, item := range items {
		maps[i] = itemToMap(item)
	}
	return maps
}

func itemToMap(item content.Item) (result map[string]interface{}) {
	bullets := make([]string, len(item.Bullets))
	for i, bullet := range item.Bullets {
		bullets[i] = bullet.Text
	}

	result = map[string]interface{}{
		"id":         item.ID,
		"title":      item.Title,
		"company":    item.Org,
		"location":   item.Location,
		"start_date": item.StartDate,
		"end_date":   item.EndDate,
		"relevance":  item.Relevance,
		"bullets":    bullets,
	}
	return result
}
