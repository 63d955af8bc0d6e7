package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes report in a machine format.
func Encode(w io.Writer, report *tasks.Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(report)
	case FormatXML:
		_, err := reportXML(report).WriteTo(w)
		return err
	default:
		return fmt.Errorf("format %s is not a machine format", format)
	}
}

func reportXML(report *tasks.Report) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	if report.Target != "" {
		root.CreateAttr("target", report.Target)
	}
	root.CreateAttr("os", report.OS)
	root.CreateAttr("dry-run", fmt.Sprint(report.DryRun))

	for _, o := range report.Outcomes {
		el := root.CreateElement("outcome")
		el.CreateAttr("name", o.Name)
		el.CreateAttr("kind", o.Kind)
		el.CreateAttr("status", string(o.Status))
		if o.Error != "" {
			el.CreateElement("error").SetText(o.Error)
		}
	}

	doc.Indent(2)
	return doc
}
