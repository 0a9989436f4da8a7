package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"htmlview/common"
	"htmlview/config"
	"htmlview/view"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Headings   []string
	Language   string
	Format     string
	SourceFile string
	DocumentID string
	Images     int
}

// headings returns text of all heading blocks in document order, largest
// first heading is considered a title.
func headings(root view.View) (title string, all []string) {
	view.Walk(root, func(v view.View, _ int) {
		tb, ok := v.(view.TextBlock)
		if !ok {
			return
		}
		switch tb.Hint {
		case view.HintTitleLarge:
			text := strings.TrimSpace(view.Concat(tb.Spans))
			if len(title) == 0 {
				title = text
			}
			all = append(all, text)
		case view.HintTitleMedium:
			all = append(all, strings.TrimSpace(view.Concat(tb.Spans)))
		}
	})
	if len(title) == 0 && len(all) > 0 {
		title = all[0]
	}
	return title, all
}

func expandTemplate(doc *view.Document, src string, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	title, all := headings(doc.Root)
	values := Values{
		Context:    string(name),
		Title:      title,
		Headings:   all,
		Language:   doc.Lang.String(),
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		DocumentID: doc.ID.String(),
		Images:     len(collectImages(doc.Root)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
