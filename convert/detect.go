package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/hidez8891/zip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// number of bytes examined when detecting source type
const headSize = 512

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUnknown:
		return "unknown"
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	}
	return fmt.Sprintf("srcEncoding(%d)", int(e))
}

type srcKind int

const (
	kindNone srcKind = iota
	kindHTML
	kindMarkdown
)

func (k srcKind) String() string {
	switch k {
	case kindHTML:
		return "html"
	case kindMarkdown:
		return "markdown"
	}
	return "none"
}

var htmlType = filetype.NewType("html", "text/html")

func init() {
	// filetype does not know about markup, teach it to recognize html
	// documents without proper extension
	filetype.AddMatcher(htmlType, func(buf []byte) bool {
		head := bytes.ToLower(bytes.TrimLeft(buf, "\xef\xbb\xbf \t\r\n"))
		return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
	})
}

func kindByName(name string) srcKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return kindHTML
	case ".md", ".markdown":
		return kindMarkdown
	}
	return kindNone
}

// classify decides what kind of source we have looking at its name and
// first bytes.
func classify(name string, head []byte) (srcKind, srcEncoding) {
	enc := detectUTF(head)
	if enc == encUTF16BigEndian || enc == encUTF16LittleEndian ||
		enc == encUTF32BigEndian || enc == encUTF32LittleEndian {
		// unable to sniff content, trust the name
		return kindByName(name), enc
	}

	kind, _ := filetype.Match(head)
	if kind == htmlType {
		return kindHTML, enc
	}
	if kind != types.Unknown {
		// some binary content
		return kindNone, encUnknown
	}
	return kindByName(name), enc
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func isSourceFile(path string) (srcKind, srcEncoding, error) {
	head, err := readHead(path)
	if err != nil {
		return kindNone, encUnknown, err
	}
	kind, enc := classify(path, head)
	return kind, enc, nil
}

func isSourceInArchive(f *zip.File) (srcKind, srcEncoding, error) {
	if kindByName(f.Name) == kindNone {
		// do not decompress everything
		return kindNone, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return kindNone, encUnknown, err
	}
	defer r.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return kindNone, encUnknown, err
	}
	kind, enc := classify(f.Name, head[:n])
	return kind, enc, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

// selectReader strips BOM and converts to UTF-8 when necessary.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}
