package server

import (
	"embed"
	"html/template"
)

//go:embed templates/*
var templateFiles embed.FS

// ParseTemplate parses a page template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := templateFiles.ReadFile("templates/" + name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}
