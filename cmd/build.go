package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dylandalal/resume-builder/pkg/compile"
	"github.com/dylandalal/resume-builder/pkg/config"
	"github.com/dylandalal/resume-builder/pkg/content"
	"github.com/dylandalal/resume-builder/pkg/jd"
	"github.com/dylandalal/resume-builder/pkg/render"
	"github.com/dylandalal/resume-builder/pkg/selector"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var outputPath string

//nolint:gochecknoglobals // Cobra boilerplate
var dataDir string

//nolint:gochecknoglobals // Cobra boilerplate
var templatePath string

//nolint:gochecknoglobals // Cobra boilerplate
var apiKey string

//nolint:gochecknoglobals // Cobra boilerplate
var nameOverride string

//nolint:gochecknoglobals // Cobra boilerplate
var contactOverride string

//nolint:gochecknoglobals // Cobra boilerplate
var educationPath string

//nolint:gochecknoglobals // Cobra boilerplate
var requiredJobs string

//nolint:gochecknoglobals // Cobra boilerplate
var requiredProjects string

//nolint:gochecknoglobals // Cobra boilerplate
var skipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var buildCmd = &cobra.Command{
	Use:   "build <jd-file-or-url>",
	Short: "Build a resume tailored to a job description",
	Long: `Build a resume tailored to a job description.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

Example:
  resume-builder build jd.txt --output resume.pdf
  resume-builder build https://example.com/jobs/123 --output out/resume.pdf
  resume-builder build jd.txt --output resume.pdf --required-jobs acme-sre`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path for the compiled resume (default <output-dir>/<name>-resume.pdf from config)")
	buildCmd.Flags().StringVar(&dataDir, "data-dir", "", "Content catalog directory (default from config)")
	buildCmd.Flags().StringVar(&templatePath, "template", "", "LaTeX template path (default from config)")
	buildCmd.Flags().StringVar(&apiKey, "key", "", "OpenAI API key (default from config or OPENAI_API_KEY)")
	buildCmd.Flags().StringVar(&nameOverride, "name", "", "Override the configured name")
	buildCmd.Flags().StringVar(&contactOverride, "contact", "", "Override contact entries (JSON array or comma list)")
	buildCmd.Flags().StringVar(&educationPath, "education", "", "Path to a JSON file overriding education entries")
	buildCmd.Flags().StringVar(&requiredJobs, "required-jobs", "", "Comma-separated job IDs that must appear")
	buildCmd.Flags().StringVar(&requiredProjects, "required-projects", "", "Comma-separated project IDs that must appear")
	buildCmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Write the LaTeX source instead of compiling a PDF")
}

func runBuild(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Setup: load config, fetch JD, load catalogs.
	cfg, jobDescription, err := setupBuild(args[0])
	if err != nil {
		return err
	}

	jobs, projects, personal, err := loadContent(cfg)
	if err != nil {
		return err
	}

	// Select content for this job description.
	result, err := selectContent(ctx, cfg, jobDescription, jobs, projects, personal.Skills)
	if err != nil {
		err = errors.Wrap(err, "selection failed")
		return err
	}

	if result.Empty() {
		if getVerbose() {
			fmt.Println("Model picked nothing, falling back to default selection")
		}
		result = selector.DefaultSelection(jobs, projects, personal.Skills)
	}

	// Resolve picks against the catalogs and render.
	doc := resolveDocument(result, jobs, projects, personal)

	templateData, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read template: %s", cfg.TemplatePath)
		return err
	}

	source, err := render.Render(string(templateData), doc)
	if err != nil {
		err = errors.Wrap(err, "rendering failed")
		return err
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(cfg)
	}

	// Compile, or just write the source when asked to.
	var compileResult compile.Result
	if skipPDF {
		compileResult, err = compile.WriteSource(source, out)
	} else {
		compileResult, err = compile.Compile(ctx, source, out, compile.DefaultChain())
	}
	if err != nil {
		err = errors.Wrap(err, "compilation failed")
		return err
	}

	if compileResult.Degraded && !skipPDF {
		fmt.Printf("Warning: no LaTeX engine found (tectonic or pdflatex), wrote source to: %s\n", compileResult.Path)
	} else if compileResult.Tool != "" {
		fmt.Printf("Compiled with %s: %s\n", compileResult.Tool, compileResult.Path)
	} else {
		fmt.Printf("Wrote LaTeX source to: %s\n", compileResult.Path)
	}

	return err
}

// setupBuild loads configuration, applies flag overrides, and fetches
// the job description.
func setupBuild(jdInput string) (cfg config.Config, jobDescription string, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, jobDescription, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if templatePath != "" {
		cfg.TemplatePath = templatePath
	}
	if apiKey != "" {
		cfg.OpenAIAPIKey = apiKey
	}

	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.Fetch(jdInput)
	if err != nil {
		err = errors.Wrap(err, "failed to load job description")
		return cfg, jobDescription, err
	}

	return cfg, jobDescription, err
}

// loadContent loads both catalogs and the personal record, applying any
// override flags to the personal record.
func loadContent(cfg config.Config) (jobs, projects *content.Catalog, personal content.Personal, err error) {
	jobs, err = content.LoadCatalog(cfg.JobsPath())
	if err != nil {
		err = errors.Wrap(err, "failed to load jobs catalog")
		return jobs, projects, personal, err
	}

	projects, err = content.LoadCatalog(cfg.ProjectsPath())
	if err != nil {
		err = errors.Wrap(err, "failed to load projects catalog")
		return jobs, projects, personal, err
	}

	personal, err = content.LoadPersonal(cfg.PersonalPath())
	if err != nil {
		err = errors.Wrap(err, "failed to load personal record")
		return jobs, projects, personal, err
	}

	var overrides content.Overrides
	overrides, err = buildOverrides()
	if err != nil {
		return jobs, projects, personal, err
	}
	personal = personal.Merge(overrides)

	if getVerbose() {
		fmt.Printf("Loaded %d jobs, %d projects\n", jobs.Len(), projects.Len())
	}

	return jobs, projects, personal, err
}

// buildOverrides assembles personal overrides from the command flags.
func buildOverrides() (overrides content.Overrides, err error) {
	overrides.Name = nameOverride
	overrides.Contact = parseContact(contactOverride)

	if educationPath != "" {
		var data []byte
		data, err = os.ReadFile(educationPath)
		if err != nil {
			err = errors.Wrapf(err, "failed to read education file: %s", educationPath)
			return overrides, err
		}
		err = json.Unmarshal(data, &overrides.Education)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse education file: %s", educationPath)
			return overrides, err
		}
	}

	return overrides, err
}

// defaultOutputPath derives an output path from config when --output is
// not given: the configured output directory plus a name-derived file.
func defaultOutputPath(cfg config.Config) (path string) {
	path = filepath.Join(cfg.Defaults.OutputDir, sanitizeFilename(cfg.Name)+"-resume.pdf")
	return path
}

// sanitizeFilename converts a display name into a safe file name.
func sanitizeFilename(name string) (sanitized string) {
	sanitized = strings.ToLower(name)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// Trim hyphens from ends
	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// parseContact accepts either a JSON array or a comma-separated list.
func parseContact(raw string) (entries []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entries
	}

	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return entries
		}
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}

	return entries
}

// selectContent runs the model-backed selection with a progress spinner.
func selectContent(ctx context.Context, cfg config.Config, jobDescription string, jobs, projects *content.Catalog, skills []string) (result selector.Result, err error) {
	client := selector.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.GetSelectionModel())
	sel := selector.New(client)

	req := selector.Request{
		JobDescription:   jobDescription,
		Jobs:             jobs,
		Projects:         projects,
		Skills:           skills,
		RequiredJobs:     splitIDs(requiredJobs),
		RequiredProjects: splitIDs(requiredProjects),
	}

	// Show spinner during selection unless in verbose mode.
	var selectSpinner *spinner
	if !getVerbose() {
		selectSpinner = newSpinner("Selecting relevant content...")
		selectSpinner.start()
	}

	result, err = sel.Select(ctx, req)

	if selectSpinner != nil {
		selectSpinner.stopSpinner()
	}

	return result, err
}

func splitIDs(raw string) (ids []string) {
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// resolveDocument turns selection picks into fully resolved render
// input. Items appear in catalog order regardless of how the model
// ranked them, so the resume reads chronologically.
func resolveDocument(result selector.Result, jobs, projects *content.Catalog, personal content.Personal) (doc render.Document) {
	doc = render.Document{
		Name:       personal.Name,
		Contact:    personal.Contact,
		Skills:     result.Skills,
		Education:  personal.Education,
		Experience: resolveSections(result.Jobs, jobs),
		Projects:   resolveSections(result.Projects, projects),
	}
	return doc
}

func resolveSections(picks []selector.Pick, catalog *content.Catalog) (sections []render.Section) {
	byID := make(map[string]selector.Pick, len(picks))
	for _, pick := range picks {
		byID[pick.ID] = pick
	}

	for _, item := range catalog.Items() {
		pick, chosen := byID[item.ID]
		if !chosen {
			continue
		}

		section := render.Section{
			Title:     item.Title,
			Org:       item.Org,
			Location:  item.Location,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
			Links:     item.Links,
		}

		for i, idx := range pick.BulletIndices {
			text := item.Bullets[idx].Text
			if i < len(pick.Rewritten) && pick.Rewritten[i] != "" {
				text = pick.Rewritten[i]
			}
			section.Bullets = append(section.Bullets, text)
		}

		sections = append(sections, section)
	}

	return sections
}
