package config

import (
	"fmt"

	"github.com/micron-ops/optexpand/internal/expand"
)

// Sweep is the unified representation of one or more sweep files.
type Sweep struct {
	// Options in declaration order across all files.
	Options []expand.Option
	// Template holds the template text when HasTemplate is set.
	Template    string
	HasTemplate bool
	// Files lists the files the sweep was assembled from, in load order.
	Files []string
}

// Lookup returns the index of the named option, or -1.
func (s *Sweep) Lookup(name string) int {
	for i, opt := range s.Options {
		if opt.Name == name {
			return i
		}
	}
	return -1
}

// AddOption appends opt, failing if the name is already declared.
func (s *Sweep) AddOption(opt expand.Option) error {
	if s.Lookup(opt.Name) >= 0 {
		return &expand.DuplicateOptionError{Name: opt.Name}
	}
	s.Options = append(s.Options, opt)
	return nil
}

// SetTemplate records the template, failing if one is already set.
func (s *Sweep) SetTemplate(text string) error {
	if s.HasTemplate {
		return fmt.Errorf("template defined more than once")
	}
	s.Template = text
	s.HasTemplate = true
	return nil
}

// Override applies command line options on top of the sweep. An option that
// is already declared keeps its position and takes the new domain; unknown
// ones are appended. It returns the names that replaced a declared option.
func (s *Sweep) Override(opts []expand.Option) []string {
	var replaced []string
	for _, opt := range opts {
		if i := s.Lookup(opt.Name); i >= 0 {
			s.Options[i].Domain = opt.Domain
			replaced = append(replaced, opt.Name)
			continue
		}
		s.Options = append(s.Options, opt)
	}
	return replaced
}
