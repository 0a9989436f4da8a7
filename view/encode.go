package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amazon-ion/ion-go/ion"
	"github.com/beevik/etree"
	yaml "gopkg.in/yaml.v3"

	"htmlview/common"
)

// record is format neutral ordered representation of a descriptor used by
// all serializers.
type record struct {
	kind   string
	fields []field
}

type field struct {
	name  string
	value any // string, float64, int, bool, []string, [][]string, *record, []*record
}

func (r *record) add(name string, value any) *record {
	r.fields = append(r.fields, field{name: name, value: value})
	return r
}

func (r *record) addString(name, value string) *record {
	if len(value) == 0 {
		return r
	}
	return r.add(name, value)
}

func encodeDocument(d *Document) *record {
	r := &record{kind: "document"}
	r.add("id", d.ID.String())
	r.add("lang", d.Lang.String())
	r.add("size", d.Size)
	r.add("spacing", d.Spacing)
	r.add("selectable", d.Selectable)
	if d.Root != nil {
		r.add("root", encodeView(d.Root))
	}
	return r
}

func encodeView(v View) *record {
	r := &record{kind: string(v.Kind())}
	switch x := v.(type) {
	case TextBlock:
		r.add("hint", string(x.Hint))
		r.addString("anchor", x.Anchor)
		r.add("spans", encodeSpans(x.Spans))
	case Image:
		r.add("url", x.URL)
		r.addString("alt", x.Alt)
		r.add("placeholder_opacity", x.PlaceholderOpacity)
	case Figure:
		if x.HasCaption {
			r.add("caption", x.Caption)
		}
		if x.Image != nil {
			r.add("image", encodeView(*x.Image))
		}
	case Link:
		r.add("url", x.URL)
		r.add("text", x.Text)
	case UnorderedList:
		r.add("spacing", x.Spacing)
		r.add("items", encodeItems(x.Items))
	case OrderedList:
		r.add("spacing", x.Spacing)
		r.add("items", encodeItems(x.Items))
	case Table:
		r.add("spacing", x.Spacing)
		r.add("header_lines", x.HeaderLines)
		r.add("headers", x.Headers)
		r.add("rows", x.Rows)
	case CodeBlock:
		r.add("font_size", x.FontSize)
		r.add("text", x.Text)
	case Container:
		r.add("spacing", x.Spacing)
		children := make([]*record, 0, len(x.Children))
		for _, c := range x.Children {
			children = append(children, encodeView(c))
		}
		r.add("children", children)
	}
	return r
}

func encodeSpans(spans []Span) []*record {
	res := make([]*record, 0, len(spans))
	for _, s := range spans {
		r := &record{kind: "span"}
		r.add("style", string(s.Style))
		r.addString("url", s.URL)
		r.add("text", s.Text)
		res = append(res, r)
	}
	return res
}

func encodeItems(items []ListItem) []*record {
	res := make([]*record, 0, len(items))
	for _, it := range items {
		r := &record{kind: "item"}
		r.add("marker", it.Marker)
		r.add("spans", encodeSpans(it.Spans))
		res = append(res, r)
	}
	return res
}

// Write serializes document in requested format.
func (d *Document) Write(w io.Writer, format common.OutputFmt) error {
	switch format {
	case common.OutputFmtText:
		_, err := io.WriteString(w, d.Dump())
		return err
	case common.OutputFmtYaml:
		return writeYAML(w, encodeDocument(d))
	case common.OutputFmtIon:
		return writeIon(w, encodeDocument(d))
	case common.OutputFmtXml:
		return writeXML(w, encodeDocument(d))
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func writeYAML(w io.Writer, r *record) error {
	node, err := yamlRecord(r)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("unable to encode yaml: %w", err)
	}
	return enc.Close()
}

func yamlRecord(r *record) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "kind"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: r.kind})
	for _, f := range r.fields {
		val, err := yamlValue(f.value)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", r.kind, f.name, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f.name}, val)
	}
	return n, nil
}

func yamlValue(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case *record:
		return yamlRecord(v)
	case []*record:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range v {
			n, err := yamlRecord(r)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(value); err != nil {
		return nil, err
	}
	return n, nil
}

func writeIon(w io.Writer, r *record) error {
	iw := ion.NewTextWriter(w)
	if err := ionValue(iw, r); err != nil {
		return fmt.Errorf("unable to encode ion: %w", err)
	}
	return iw.Finish()
}

func ionValue(w ion.Writer, value any) error {
	switch v := value.(type) {
	case *record:
		if err := w.BeginStruct(); err != nil {
			return err
		}
		if err := w.FieldName(ion.NewSymbolTokenFromString("kind")); err != nil {
			return err
		}
		if err := w.WriteSymbolFromString(v.kind); err != nil {
			return err
		}
		for _, f := range v.fields {
			if err := w.FieldName(ion.NewSymbolTokenFromString(f.name)); err != nil {
				return err
			}
			if err := ionValue(w, f.value); err != nil {
				return err
			}
		}
		return w.EndStruct()
	case []*record:
		return ionList(w, len(v), func(i int) any { return v[i] })
	case []string:
		return ionList(w, len(v), func(i int) any { return v[i] })
	case [][]string:
		return ionList(w, len(v), func(i int) any { return v[i] })
	case string:
		return w.WriteString(v)
	case float64:
		return w.WriteFloat(v)
	case int:
		return w.WriteInt(int64(v))
	case bool:
		return w.WriteBool(v)
	}
	return fmt.Errorf("unsupported value type: %T", value)
}

func ionList(w ion.Writer, n int, item func(int) any) error {
	if err := w.BeginList(); err != nil {
		return err
	}
	for i := range n {
		if err := ionValue(w, item(i)); err != nil {
			return err
		}
	}
	return w.EndList()
}

func writeXML(w io.Writer, r *record) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	xmlRecord(&doc.Element, r)
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write xml: %w", err)
	}
	return nil
}

func xmlRecord(parent *etree.Element, r *record) {
	el := parent.CreateElement(r.kind)
	for _, f := range r.fields {
		switch v := f.value.(type) {
		case *record:
			xmlRecord(el.CreateElement(f.name), v)
		case []*record:
			list := el.CreateElement(f.name)
			for _, c := range v {
				xmlRecord(list, c)
			}
		case []string:
			xmlCells(el.CreateElement(f.name), v)
		case [][]string:
			rows := el.CreateElement(f.name)
			for _, row := range v {
				xmlCells(rows.CreateElement("row"), row)
			}
		case string:
			if f.name == "text" {
				el.SetText(v)
			} else {
				el.CreateAttr(f.name, v)
			}
		case float64:
			el.CreateAttr(f.name, formatFloat(v))
		case int:
			el.CreateAttr(f.name, strconv.Itoa(v))
		case bool:
			el.CreateAttr(f.name, strconv.FormatBool(v))
		}
	}
}

func xmlCells(parent *etree.Element, cells []string) {
	for _, c := range cells {
		parent.CreateElement("cell").SetText(c)
	}
}
