package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hidez8891/zip"
	"golang.org/x/text/encoding/unicode"
)

const sampleHTML = `<!DOCTYPE html>
<html lang="en"><head><title>Sample</title></head>
<body><h1>Sample page</h1><p>Hello <b>world</b>, see <a href="https://example.com/">example</a>.</p></body>
</html>`

// TestIsArchiveFile tests archive file detection
func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("non-zip extension", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.txt")
		if err := os.WriteFile(filePath, []byte("not a zip"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	t.Run("zip extension but invalid content", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "test.zip")
		if err := os.WriteFile(filePath, []byte("not a real zip file"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if got {
			t.Errorf("isArchiveFile() = %v, want false", got)
		}
	})

	t.Run("valid zip file", func(t *testing.T) {
		filePath := createTestZip(t, tmpDir, "valid.zip", map[string]string{"index.html": sampleHTML})
		got, err := isArchiveFile(filePath)
		if err != nil {
			t.Errorf("isArchiveFile() error = %v", err)
		}
		if !got {
			t.Errorf("isArchiveFile() = %v, want true", got)
		}
	})
}

func TestIsArchiveFile_NonExistent(t *testing.T) {
	if _, err := isArchiveFile("/nonexistent/file.zip"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 0x00}, encUTF8},
		{"UTF-16 Big Endian BOM", []byte{0xFE, 0xFF, 0x00, 0x00}, encUTF16BigEndian},
		{"UTF-16 Little Endian BOM", []byte{0xFF, 0xFE, 0x01, 0x00}, encUTF16LittleEndian},
		{"UTF-32 Big Endian BOM", []byte{0x00, 0x00, 0xFE, 0xFF}, encUTF32BigEndian},
		{"UTF-32 Little Endian BOM", []byte{0xFF, 0xFE, 0x00, 0x00}, encUTF32LittleEndian},
		{"No BOM", []byte{0x00, 0x01, 0x02, 0x03}, encUnknown},
		{"Short buffer", []byte{0xEF}, encUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.buf); got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBOMDetectionFunctions(t *testing.T) {
	t.Run("isUTF8BOM3", func(t *testing.T) {
		if !isUTF8BOM3([]byte{0xEF, 0xBB, 0xBF}) {
			t.Error("Expected true for UTF-8 BOM")
		}
		if isUTF8BOM3([]byte{0x00, 0x00, 0x00}) {
			t.Error("Expected false for non-BOM")
		}
	})

	t.Run("isUTF16BigEndianBOM2", func(t *testing.T) {
		if !isUTF16BigEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected true for UTF-16 BE BOM")
		}
		if isUTF16BigEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected false for UTF-16 LE BOM")
		}
	})

	t.Run("isUTF32LittleEndianBOM4", func(t *testing.T) {
		if !isUTF32LittleEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected true for UTF-32 LE BOM")
		}
		if isUTF32LittleEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected false for UTF-32 BE BOM")
		}
	})
}

func TestIsSourceFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantKind srcKind
		wantEnc  srcEncoding
	}{
		{"html file", "page.html", []byte(sampleHTML), kindHTML, encUnknown},
		{"html with UTF-8 BOM", "page-bom.htm", append([]byte{0xEF, 0xBB, 0xBF}, sampleHTML...), kindHTML, encUTF8},
		{"html without extension", "page", []byte(sampleHTML), kindHTML, encUnknown},
		{"html fragment", "fragment.xhtml", []byte("<p>fragment</p>"), kindHTML, encUnknown},
		{"markdown", "README.md", []byte("# Title\n\nText\n"), kindMarkdown, encUnknown},
		{"uppercase extension", "PAGE.HTML", []byte(sampleHTML), kindHTML, encUnknown},
		{"plain text", "notes.txt", []byte("just notes"), kindNone, encUnknown},
		{"binary with html extension", "image.html", testPNGHead(), kindNone, encUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)
			if err := os.WriteFile(filePath, tt.content, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			gotKind, gotEnc, err := isSourceFile(filePath)
			if err != nil {
				t.Fatalf("isSourceFile() error = %v", err)
			}
			if gotKind != tt.wantKind {
				t.Errorf("isSourceFile() kind = %v, want %v", gotKind, tt.wantKind)
			}
			if gotEnc != tt.wantEnc {
				t.Errorf("isSourceFile() encoding = %v, want %v", gotEnc, tt.wantEnc)
			}
		})
	}
}

func TestIsSourceFile_NonExistent(t *testing.T) {
	if _, _, err := isSourceFile("/nonexistent/file.html"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestIsSourceInArchive(t *testing.T) {
	zipPath := createTestZip(t, t.TempDir(), "test.zip", map[string]string{
		"a.html":    sampleHTML,
		"b.txt":     "not a source",
		"c-bom.htm": "\xef\xbb\xbf" + sampleHTML,
		"d.md":      "# Title\n",
	})

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	defer r.Close()

	want := map[string]struct {
		kind srcKind
		enc  srcEncoding
	}{
		"a.html":    {kindHTML, encUnknown},
		"b.txt":     {kindNone, encUnknown},
		"c-bom.htm": {kindHTML, encUTF8},
		"d.md":      {kindMarkdown, encUnknown},
	}
	for _, f := range r.File {
		t.Run(f.Name, func(t *testing.T) {
			kind, enc, err := isSourceInArchive(f)
			if err != nil {
				t.Fatalf("isSourceInArchive() error = %v", err)
			}
			if kind != want[f.Name].kind || enc != want[f.Name].enc {
				t.Errorf("isSourceInArchive() = %v, %v, want %v, %v", kind, enc, want[f.Name].kind, want[f.Name].enc)
			}
		})
	}
}

func TestSelectReader(t *testing.T) {
	text := "<p>Привет, мир</p>"

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		enc  srcEncoding
	}{
		{"unknown", []byte(text), encUnknown},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), encUTF8},
		{"utf16le", []byte(utf16le), encUTF16LittleEndian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(selectReader(bytes.NewReader(tt.data), tt.enc))
			if err != nil {
				t.Fatalf("read error = %v", err)
			}
			if string(got) != text {
				t.Errorf("selectReader() produced %q, want %q", got, text)
			}
		})
	}
}

func TestSelectReader_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid encoding, but didn't panic")
		}
	}()
	selectReader(bytes.NewReader([]byte("test")), srcEncoding(999))
}

func TestSrcEncoding_String(t *testing.T) {
	tests := []struct {
		enc  srcEncoding
		want string
	}{
		{encUnknown, "unknown"},
		{encUTF8, "utf8"},
		{encUTF16BigEndian, "utf16be"},
		{encUTF16LittleEndian, "utf16le"},
		{encUTF32BigEndian, "utf32be"},
		{encUTF32LittleEndian, "utf32le"},
		{srcEncoding(42), "srcEncoding(42)"},
	}
	for _, tt := range tests {
		if got := tt.enc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
