package ai

import (
	"os"
	"path/filepath"
	"strings"
)

// Resume is one candidate resume variant fed to the analyzer.
type Resume struct {
	Name    string
	Content string
}

// LoadResumes reads every .txt and .md file in dir. A missing directory is
// not an error; analysis simply runs without resume context.
func LoadResumes(dir string) ([]Resume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var resumes []Resume
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, Resume{
			Name:    strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Content: string(data),
		})
	}
	return resumes, nil
}
