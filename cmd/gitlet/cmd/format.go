// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"text/template"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Formatter renders the result of a command
type Formatter interface {
	Format(io.Writer, interface{}) error
}

// FormatterFunc is a function usable as a Formatter
type FormatterFunc func(io.Writer, interface{}) error

// Format the data
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

func jsonFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
}

func yamlFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		b, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
}

// render writes data in the format selected on the command line.
//
// The text format and any other format specific to the command come from formatters.
func render(data interface{}, formatters map[string]Formatter) error {
	format := gitletFlags.output.format
	if format == "" {
		format = formatText
	}

	var f Formatter
	switch format {
	case formatJSON:
		f = jsonFormatter()
	case formatYAML:
		f = yamlFormatter()
	default:
		var ok bool
		if f, ok = formatters[format]; !ok {
			return errors.Errorf("unsupported output format %q", format)
		}
	}
	return f.Format(stdout, data)
}

// commitTemplate is the template given on the command line, if any
func commitTemplate() (*template.Template, error) {
	if gitletFlags.output.template == "" {
		return nil, nil
	}
	t, err := template.New("commit").Parse(gitletFlags.output.template)
	if err != nil {
		return nil, errors.Wrap(err, "invalid template")
	}
	return t, nil
}

func executeTemplate(w io.Writer, t *template.Template, data interface{}) error {
	if err := t.Execute(w, data); err != nil {
		return errors.Wrap(err, "executing template")
	}
	_, err := fmt.Fprintln(w)
	return err
}
