package selector

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// parsePicks extracts a pick list from a model response under the given
// key. A missing key is a valid degenerate result, not an error.
func parsePicks(response, key string) (picks []Pick, err error) {
	cleaned := stripMarkdownCodeFences(response)

	if !gjson.Valid(cleaned) {
		err = errors.Wrapf(ErrSelectionParse, "response is not valid JSON: %s", truncateForError(response))
		return picks, err
	}

	arr := gjson.Get(cleaned, key)
	if !arr.Exists() {
		return picks, err
	}
	if !arr.IsArray() {
		err = errors.Wrapf(ErrSelectionParse, "%s is not an array", key)
		return picks, err
	}

	arr.ForEach(func(_, value gjson.Result) bool {
		pick := Pick{
			ID: value.Get("id").String(),
		}
		for _, idx := range value.Get("bullet_indices").Array() {
			pick.BulletIndices = append(pick.BulletIndices, int(idx.Int()))
		}
		for _, text := range value.Get("rewritten_bullets").Array() {
			pick.Rewritten = append(pick.Rewritten, text.String())
		}
		picks = append(picks, pick)
		return true
	})

	return picks, err
}

// parseSkills extracts the chosen skill tags from a model response.
func parseSkills(response string) (skills []string, err error) {
	cleaned := stripMarkdownCodeFences(response)

	if !gjson.Valid(cleaned) {
		err = errors.Wrapf(ErrSelectionParse, "response is not valid JSON: %s", truncateForError(response))
		return skills, err
	}

	for _, tag := range gjson.Get(cleaned, "skills").Array() {
		skills = append(skills, tag.String())
	}

	return skills, err
}

// parseBulletIndices extracts ranked bullet indices from a rank response.
func parseBulletIndices(response string) (indices []int, err error) {
	cleaned := stripMarkdownCodeFences(response)

	if !gjson.Valid(cleaned) {
		err = errors.Wrapf(ErrSelectionParse, "response is not valid JSON: %s", truncateForError(response))
		return indices, err
	}

	for _, idx := range gjson.Get(cleaned, "bullet_indices").Array() {
		indices = append(indices, int(idx.Int()))
	}

	return indices, err
}

// stripMarkdownCodeFences removes markdown code fences from JSON
// responses. JSON mode should make these impossible, but models still
// emit them occasionally.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// truncateForError keeps error messages readable on large responses.
func truncateForError(text string) (truncated string) {
	const limit = 200
	truncated = text
	if len(truncated) > limit {
		truncated = truncated[:limit] + "..."
	}
	return truncated
}
