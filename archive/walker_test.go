package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/hidez8891/zip"
)

type entry struct {
	name    string
	content string
}

func createZip(t *testing.T, entries ...entry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func visit(t *testing.T, zipPath, prefix string) []string {
	t.Helper()

	var visited []string
	err := Walk(zipPath, prefix, func(archive string, file *zip.File, err error) error {
		if err != nil {
			t.Errorf("unexpected entry error: %v", err)
		}
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t,
		entry{"docs/readme.html", "readme content"},
		entry{"docs/guide.md", "guide content"},
		entry{"site/index.html", "index content"},
		entry{"site/about.html", "about content"},
		entry{"config.yml", "config content"},
	)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"docs prefix", "docs/", []string{"docs/guide.md", "docs/readme.html"}},
		{"site prefix", "site/", []string{"site/about.html", "site/index.html"}},
		{"no match", "nonexistent/", nil},
		{"empty prefix", "", []string{"config.yml", "docs/guide.md", "docs/readme.html", "site/about.html", "site/index.html"}},
		{"prefix is case sensitive", "Docs/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visit(t, zipPath, tt.prefix); !slices.Equal(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("walkFn returns error", func(t *testing.T) {
		expectedErr := errors.New("test error")
		err := Walk(zipPath, "docs/", func(archive string, file *zip.File, _ error) error {
			return expectedErr
		})
		if err != expectedErr {
			t.Errorf("Walk() error = %v, want %v", err, expectedErr)
		}
	})
}

func TestWalk_NaturalOrder(t *testing.T) {
	zipPath := createZip(t,
		entry{"book/ch10.html", ""},
		entry{"book/ch2.html", ""},
		entry{"book/ch1.html", ""},
		entry{"book/appendix.html", ""},
	)

	want := []string{"book/appendix.html", "book/ch1.html", "book/ch2.html", "book/ch10.html"}
	if got := visit(t, zipPath, ""); !slices.Equal(got, want) {
		t.Errorf("visited %v, want %v", got, want)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", "", func(archive string, file *zip.File, _ error) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		err := Walk(invalidZip, "", func(archive string, file *zip.File, _ error) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := createZip(t,
			entry{"../evil.html", "x"},
			entry{"good.html", "y"},
			entry{"/abs.html", "z"},
			entry{"sub/../../up.html", "w"},
		)
		var visited, skipped []string
		err := Walk(zipPath, "", func(archive string, file *zip.File, err error) error {
			if err != nil {
				if !errors.Is(err, ErrUnsafePath) {
					t.Errorf("unexpected entry error: %v", err)
				}
				skipped = append(skipped, file.Name)
				return nil
			}
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if want := []string{"good.html"}; !slices.Equal(visited, want) {
			t.Errorf("visited %v, want %v", visited, want)
		}
		if len(skipped) != 3 {
			t.Errorf("expected 3 unsafe entries, got %v", skipped)
		}
	})

	t.Run("unsafe entry stops walk when asked", func(t *testing.T) {
		zipPath := createZip(t, entry{"../evil.html", "x"}, entry{"good.html", "y"})
		err := Walk(zipPath, "", func(archive string, file *zip.File, err error) error {
			return err
		})
		if !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Walk() error = %v, want ErrUnsafePath", err)
		}
	})
}

func TestWalk_WithDirectories(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	dirHeader := &zip.FileHeader{Name: "mydir/"}
	dirHeader.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(dirHeader); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	fw, err := w.Create("mydir/file.html")
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	fw.Write([]byte("content"))
	w.Close()
	zipFile.Close()

	want := []string{"mydir/file.html"}
	if got := visit(t, zipPath, "mydir/"); !slices.Equal(got, want) {
		t.Errorf("visited %v, want %v (file only, not directory)", got, want)
	}
}

func TestWalk_FileContent(t *testing.T) {
	content := []byte("<p>test content</p>")
	zipPath := createZip(t, entry{"test.html", string(content)})

	err := Walk(zipPath, "", func(archive string, file *zip.File, _ error) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(rc); err != nil {
			return err
		}
		if !bytes.Equal(buf.Bytes(), content) {
			t.Errorf("content = %s, want %s", buf.Bytes(), content)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}
