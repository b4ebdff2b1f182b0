package compiler

import "strings"

// ExportEntry is one declaration in an export report
type ExportEntry struct {
	Bind     string   // first path segment (skipping a leading "api"), or the CLI group
	Pattern  string   // declared pattern, untouched by base-group resolution
	Callback string   // "TypeName::MethodName" handler reference
	Methods  []string // HTTP verbs; empty for CLI declarations
	Group    string   // CLI group; empty for HTTP declarations
	Phase    string   // middleware phase, "none" for plain handlers
}

// ExportReport classifies every discovered declaration by inferred
// context. It serves introspection and tooling, not live dispatch.
type ExportReport struct {
	HTTP []ExportEntry
	API  []ExportEntry
	CLI  []ExportEntry
}

// Export scans path and classifies all declarations into http, api and
// cli buckets. Unlike the install operations it runs in either mode and
// admits every capability.
func (c *Compiler) Export(path string) (*ExportReport, error) {
	candidates, extractErrs, err := c.collect(path)
	if err != nil {
		return nil, err
	}

	report := &ExportReport{}
	for _, candidate := range candidates {
		if !candidate.Instantiable() {
			continue
		}
		for _, method := range candidate.Methods {
			for _, declaration := range method.Routes {
				entry := ExportEntry{
					Pattern:  declaration.Pattern,
					Callback: candidate.Callback(method.Name).String(),
					Phase:    declaration.Phase.String(),
				}

				switch {
				case declaration.IsCLI():
					entry.Group = declaration.Group
					entry.Bind = declaration.Group
					report.CLI = append(report.CLI, entry)
				case isAPIPattern(declaration.Pattern):
					entry.Methods = declaration.Methods
					entry.Bind = bindKey(declaration.Pattern)
					report.API = append(report.API, entry)
				default:
					entry.Methods = declaration.Methods
					entry.Bind = bindKey(declaration.Pattern)
					report.HTTP = append(report.HTTP, entry)
				}
			}
		}
	}

	if !extractErrs.IsEmpty() {
		return report, extractErrs
	}
	return report, nil
}

// isAPIPattern reports whether a declared pattern routes under "api"
func isAPIPattern(pattern string) bool {
	return strings.HasPrefix(pattern, "api") || strings.HasPrefix(pattern, "/api")
}

// bindKey extracts the first path segment of a pattern, skipping a
// leading "api" segment. The root pattern binds as "/".
func bindKey(pattern string) string {
	segments := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(segments) > 0 && segments[0] == "api" {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return "/"
	}
	return segments[0]
}
