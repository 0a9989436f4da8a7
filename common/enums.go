// Package common keeps enumerations shared by configuration, command line and
// processing packages.
package common

// Specification of requested output type.
// ENUM(text, yaml, ion, xml)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtText:
		return ".txt"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtIon:
		return ".ion"
	case OutputFmtXml:
		return ".xml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// How child elements are located inside parent flattened text.
// ENUM(offsets, search)
type SegmentMode int

// Specification of image resizing mode.
// ENUM(none, keepAR, stretch)
type ImageResizeMode int
