// Package compiler turns discovered candidate types into a compiled
// routing table. One Compiler instance builds one table per pass; the
// table is handed to the router afterwards and never mutated again.
package compiler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/luminovang/novaroute/internal/errors"
	"github.com/luminovang/novaroute/internal/models"
	"github.com/luminovang/novaroute/internal/scanner"
	"github.com/luminovang/novaroute/pkg/routing"
)

// WebContext is the context name that always receives error bindings
// regardless of the active prefix.
const WebContext = "web"

// Compiler compiles declared route metadata into a routing table
type Compiler struct {
	// BaseGroup is prepended to every resolved HTTP pattern
	BaseGroup string

	// CLIMode selects which install operations are active: InstallHTTP
	// is a no-op in CLI mode and InstallCLI is a no-op outside it.
	CLIMode bool

	// OnSkip receives paths of files skipped due to read or parse
	// failures. Nil means skip silently.
	OnSkip func(path string, err error)

	passID uuid.UUID
}

// New creates a compiler for one compile pass
func New(baseGroup string, cliMode bool) *Compiler {
	return &Compiler{
		BaseGroup: baseGroup,
		CLIMode:   cliMode,
		passID:    uuid.New(),
	}
}

// PassID identifies this compile pass in logs and CLI bindings
func (c *Compiler) PassID() uuid.UUID {
	return c.passID
}

// InstallHTTP scans path and compiles HTTP route declarations into a
// table. When prefix is non-empty only patterns under that prefix are
// admitted, except root-pattern middleware declarations which always
// pass. Configuration errors on individual types are collected and
// returned together; the remaining types still compile.
func (c *Compiler) InstallHTTP(path, prefix string) (*routing.Table, error) {
	table := routing.NewTable()
	if c.CLIMode {
		return table, nil
	}

	candidates, extractErrs, err := c.collect(path)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !candidate.Instantiable() {
			continue
		}
		if !candidate.Capabilities.HasAny(models.CapabilityRoutable, models.CapabilityHTTPController, models.CapabilityViewController) {
			continue
		}
		c.installType(table, candidate, prefix)
	}

	if !extractErrs.IsEmpty() {
		return table, extractErrs
	}
	return table, nil
}

// installType compiles one candidate's declarations into the table
func (c *Compiler) installType(table *routing.Table, candidate models.CandidateType, prefix string) {
	for _, context := range candidate.Contexts {
		if context.HasErrorHandler() && (context.Name == prefix || context.Name == WebContext) {
			table.SetErrorHandler(context.Pattern, context.OnError.String())
		}
	}

	for _, method := range candidate.Methods {
		for _, declaration := range method.Routes {
			if declaration.IsCLI() {
				// A CLI group declaration aborts HTTP processing for the
				// remaining methods of this type. See DESIGN.md.
				return
			}

			pattern := c.resolvePattern(declaration.Pattern)
			if !admit(pattern, prefix, declaration) {
				continue
			}

			callback := candidate.Callback(method.Name).String()
			for _, httpMethod := range declaration.Methods {
				if declaration.IsErrorHandler {
					table.SetErrorHandler(pattern, callback)
					continue
				}
				switch declaration.Phase {
				case models.PhaseBefore:
					table.AddMiddleware(httpMethod, routing.CompiledRoute{Pattern: pattern, Callback: callback, Middleware: true})
				case models.PhaseAfter:
					table.AddAfter(httpMethod, routing.CompiledRoute{Pattern: pattern, Callback: callback, Middleware: false})
				default:
					table.AddRoute(httpMethod, routing.CompiledRoute{Pattern: pattern, Callback: callback, Middleware: false})
				}
			}
		}
	}
}

// InstallCLI scans path and compiles CLI group declarations into a
// table. Active only in CLI mode and only for Command types; HTTP
// declarations on command types contribute nothing.
func (c *Compiler) InstallCLI(path string) (*routing.Table, error) {
	table := routing.NewTable()
	if !c.CLIMode {
		return table, nil
	}

	candidates, extractErrs, err := c.collect(path)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !candidate.Instantiable() || !candidate.Capabilities.Has(models.CapabilityCommand) {
			continue
		}

		for _, method := range candidate.Methods {
			for _, declaration := range method.Routes {
				if !declaration.IsCLI() {
					continue
				}

				callback := candidate.Callback(method.Name).String()
				if declaration.IsMiddleware() {
					security := declaration.Group
					if declaration.Phase == models.PhaseAny {
						security = routing.SecurityAny
					}
					table.AddCLIMiddleware(security, routing.CompiledRoute{
						Pattern:    declaration.Group,
						Callback:   callback,
						Middleware: true,
					})
					continue
				}

				table.AddBinding(declaration.Group, routing.Binding{
					ID:       uuid.New(),
					Group:    declaration.Group,
					Pattern:  strings.Trim(declaration.Pattern, "/"),
					Callback: callback,
				})
			}
		}
	}

	if !extractErrs.IsEmpty() {
		return table, extractErrs
	}
	return table, nil
}

// collect runs the scan and extraction phase for one install operation.
// The extractor's per-pass state is released before returning; candidates
// only live long enough to be compiled.
func (c *Compiler) collect(path string) ([]models.CandidateType, *errors.MultipleErrors, error) {
	dirScanner := scanner.NewDirectoryScanner()
	dirScanner.OnSkip = c.OnSkip

	files, err := dirScanner.Scan(path)
	if err != nil {
		return nil, nil, err
	}

	extractor := scanner.NewExtractor(path)
	extractor.OnSkip = c.OnSkip
	for _, file := range files {
		extractor.AddFile(file)
	}

	candidates := extractor.Candidates()
	extractErrs := extractor.Errors()
	extractor.Reset()
	return candidates, extractErrs, nil
}

// resolvePattern prefixes a declared pattern with the base group and
// normalizes slashes. The trailing slash is trimmed only when a base
// group is in effect, so the bare root pattern "/" survives as-is.
func (c *Compiler) resolvePattern(pattern string) string {
	resolved := c.BaseGroup + "/" + strings.Trim(pattern, "/")
	if c.BaseGroup != "" {
		resolved = strings.TrimRight(resolved, "/")
	}
	return resolved
}

// admit applies the prefix filter. Normally the resolved pattern must
// sit under the prefix; root-pattern middleware declarations are exempt
// so global middleware still attaches under a prefixed install.
func admit(pattern, prefix string, declaration models.RouteDeclaration) bool {
	if prefix == "" {
		return true
	}
	if strings.HasPrefix(strings.TrimLeft(pattern, "/"), prefix) {
		return true
	}
	return declaration.IsMiddleware() && strings.Trim(declaration.Pattern, "/") == ""
}
