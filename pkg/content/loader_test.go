package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func writeFile(t *testing.T, name, data string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(data), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeFile(t, "jobs.json", `[
		{
			"id": "job1",
			"title": "Engineer",
			"company": "Acme",
			"location": "Remote",
			"start_date": "Jan 2022",
			"end_date": "Present",
			"bullets": ["Built X", {"text": "Shipped Y", "group": "launch"}]
		},
		{
			"id": "job2",
			"title": "Intern",
			"company": "Initech",
			"bullets": []
		}
	]`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if catalog.Len() != 2 {
		t.Fatalf("Expected 2 items, got %d", catalog.Len())
	}

	item, found := catalog.Get("job1")
	if !found {
		t.Fatal("Expected to find job1")
	}

	if item.Title != "Engineer" {
		t.Errorf("Expected title 'Engineer', got '%s'", item.Title)
	}

	if item.Org != "Acme" {
		t.Errorf("Expected org 'Acme', got '%s'", item.Org)
	}

	if len(item.Bullets) != 2 {
		t.Fatalf("Expected 2 bullets, got %d", len(item.Bullets))
	}

	// String bullets normalize to text-only.
	if item.Bullets[0].Text != "Built X" || item.Bullets[0].Group != "" {
		t.Errorf("Unexpected first bullet: %+v", item.Bullets[0])
	}

	if item.Bullets[1].Group != "launch" {
		t.Errorf("Expected group 'launch', got '%s'", item.Bullets[1].Group)
	}
}

func TestLoadCatalogProjectShape(t *testing.T) {
	path := writeFile(t, "projects.json", `[
		{
			"id": "proj1",
			"name": "Tracer",
			"link": "https://github.com/test/tracer",
			"bullets": ["Traced things"]
		},
		{
			"id": "proj2",
			"name": "Mapper",
			"links": [{"name": "demo", "url": "https://example.com"}],
			"bullets": ["Mapped things"]
		}
	]`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	item, _ := catalog.Get("proj1")
	if item.Title != "Tracer" {
		t.Errorf("Expected name to map to title, got '%s'", item.Title)
	}

	// Legacy single link becomes a links entry.
	if len(item.Links) != 1 || item.Links[0].URL != "https://github.com/test/tracer" {
		t.Errorf("Unexpected links: %+v", item.Links)
	}

	item, _ = catalog.Get("proj2")
	if len(item.Links) != 1 || item.Links[0].Name != "demo" {
		t.Errorf("Unexpected links: %+v", item.Links)
	}
}

func TestLoadCatalogDuplicateID(t *testing.T) {
	path := writeFile(t, "jobs.json", `[
		{"id": "job1", "title": "A", "bullets": []},
		{"id": "job1", "title": "B", "bullets": []}
	]`)

	_, err := LoadCatalog(path)
	if err == nil {
		t.Fatal("Expected error loading catalog with duplicate ids, got nil")
	}

	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got: %v", err)
	}
}

func TestLoadCatalogMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: `this is not json`,
		},
		{
			name: "wrong top-level type",
			data: `{"id": "job1"}`,
		},
		{
			name: "missing id",
			data: `[{"title": "Engineer", "bullets": []}]`,
		},
		{
			name: "empty id",
			data: `[{"id": "", "title": "Engineer", "bullets": []}]`,
		},
		{
			name: "bullet wrong type",
			data: `[{"id": "job1", "bullets": [42]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "jobs.json", tt.data)
			_, err := LoadCatalog(path)
			if err == nil {
				t.Error("Expected load error, got nil")
			}
		})
	}
}

func TestLoadCatalogNonexistent(t *testing.T) {
	_, err := LoadCatalog("/nonexistent/jobs.json")
	if err == nil {
		t.Error("Expected error loading nonexistent catalog, got nil")
	}
}

func TestLoadPersonal(t *testing.T) {
	path := writeFile(t, "personal.json", `{
		"name": "Jane Doe",
		"contact": ["jane@x.com", "555-1234"],
		"skills": ["Go", "SQL"],
		"education": [
			{"degree": "BS CS", "institution": "State University", "end_date": "2020"}
		]
	}`)

	personal, err := LoadPersonal(path)
	if err != nil {
		t.Fatalf("Failed to load personal: %v", err)
	}

	if personal.Name != "Jane Doe" {
		t.Errorf("Expected name 'Jane Doe', got '%s'", personal.Name)
	}

	if len(personal.Contact) != 2 || personal.Contact[0] != "jane@x.com" {
		t.Errorf("Unexpected contact: %+v", personal.Contact)
	}

	if len(personal.Skills) != 2 {
		t.Errorf("Expected 2 skills, got %d", len(personal.Skills))
	}

	if len(personal.Education) != 1 || personal.Education[0].Institution != "State University" {
		t.Errorf("Unexpected education: %+v", personal.Education)
	}
}

func TestLoadPersonalMissingName(t *testing.T) {
	path := writeFile(t, "personal.json", `{"contact": ["jane@x.com"]}`)

	_, err := LoadPersonal(path)
	if err == nil {
		t.Error("Expected error loading personal without name, got nil")
	}
}

func TestMerge(t *testing.T) {
	base := Personal{
		Name:      "Jane Doe",
		Contact:   []string{"jane@x.com"},
		Education: []Education{{Degree: "BS CS", Institution: "State University"}},
	}

	tests := []struct {
		name         string
		overrides    Overrides
		expectedName string
		contactCount int
	}{
		{
			name:         "no overrides keeps loaded values",
			overrides:    Overrides{},
			expectedName: "Jane Doe",
			contactCount: 1,
		},
		{
			name: "name and contact replaced",
			overrides: Overrides{
				Name:    "J. Doe",
				Contact: []string{"j@x.com", "555-0000"},
			},
			expectedName: "J. Doe",
			contactCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := base.Merge(tt.overrides)
			if merged.Name != tt.expectedName {
				t.Errorf("Expected name '%s', got '%s'", tt.expectedName, merged.Name)
			}
			if len(merged.Contact) != tt.contactCount {
				t.Errorf("Expected %d contact entries, got %d", tt.contactCount, len(merged.Contact))
			}
		})
	}

	// The base record is never mutated.
	if base.Name != "Jane Doe" || len(base.Contact) != 1 {
		t.Error("Merge mutated the base record")
	}
}
