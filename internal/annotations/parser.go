package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/luminovang/novaroute/internal/errors"
)

// AnnotationPrefix is the comment marker all declarations start with
const AnnotationPrefix = "nova::"

// Parser parses //nova:: annotation comments into ParsedAnnotations
type Parser struct {
	grammar  *participle.Parser[annotationLine]
	registry AnnotationRegistry
}

// annotationLine is the participle grammar for one annotation comment.
// An annotation is "//nova::<kind>" followed by positional atoms and
// dash-prefixed flags/parameters.
type annotationLine struct {
	Kind  string     `parser:"Comment Prefix Separator @Atom"`
	Items []lineItem `parser:"@@*"`
}

type lineItem struct {
	Flag       *flagItem `parser:"Dash @@"`
	Positional *string   `parser:"| @Atom"`
}

type flagItem struct {
	Name  string  `parser:"@Atom"`
	Value *string `parser:"(Equals @Atom)?"`
}

// NewParser creates an annotation parser bound to a schema registry
func NewParser(registry AnnotationRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Prefix", Pattern: `nova`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Atom", Pattern: `[^\s=\-][^\s=]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	grammar := participle.MustBuild[annotationLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{
		grammar:  grammar,
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line carries a nova:: annotation
func IsAnnotation(comment string) bool {
	text := strings.TrimSpace(comment)
	text = strings.TrimPrefix(text, "//")
	return strings.HasPrefix(strings.TrimSpace(text), AnnotationPrefix)
}

// ParseAnnotation parses a single annotation comment line
func (p *Parser) ParseAnnotation(comment string, location errors.SourceLocation) (*ParsedAnnotation, error) {
	line, err := p.grammar.ParseString(location.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.WrapParseError("annotation", err).WithLocation(location)
	}

	annotationType, err := ParseAnnotationType(line.Kind)
	if err != nil {
		return nil, errors.Newf(errors.SyntaxErrorCode, "unknown annotation type '%s'", line.Kind).
			WithLocation(location).
			WithSuggestion("Use one of: route, context, controller, view, routable, command")
	}
	if p.registry != nil && !p.registry.IsRegistered(annotationType) {
		return nil, errors.Newf(errors.SchemaErrorCode, "annotation type '%s' is not registered", line.Kind).
			WithLocation(location)
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	var positional []string
	for _, item := range line.Items {
		switch {
		case item.Flag != nil:
			p.processFlag(parsed, item.Flag)
		case item.Positional != nil:
			positional = append(positional, *item.Positional)
		}
	}

	p.assignPositional(parsed, positional)

	if err := p.applyDefaults(parsed); err != nil {
		return nil, err
	}
	if err := p.validate(parsed); err != nil {
		return nil, err
	}

	return parsed, nil
}

// processFlag stores one dash parameter or flag on the annotation
func (p *Parser) processFlag(parsed *ParsedAnnotation, flag *flagItem) {
	if flag.Value != nil {
		parsed.Parameters[flag.Name] = p.convertValue(parsed.Type, flag.Name, stripQuotes(*flag.Value))
		return
	}

	// Valueless flag: booleans become true, parameters with schema
	// defaults take the default, anything else is caught by validation.
	if p.registry != nil {
		if schema, err := p.registry.GetSchema(parsed.Type); err == nil {
			if spec, exists := schema.Parameters[flag.Name]; exists {
				if spec.Type == BoolType {
					parsed.Parameters[flag.Name] = true
					return
				}
				if spec.DefaultValue != nil {
					parsed.Parameters[flag.Name] = spec.DefaultValue
					return
				}
			}
		}
	}
	parsed.Parameters[flag.Name] = true
}

// assignPositional maps positional atoms onto named parameters per type.
// For routes the first positional is the HTTP method list only when every
// comma-separated element is a known verb; otherwise it is the pattern
// (CLI command patterns and method-less HTTP routes).
func (p *Parser) assignPositional(parsed *ParsedAnnotation, positional []string) {
	if parsed.Type != RouteAnnotation || len(positional) == 0 {
		return
	}

	if isMethodList(positional[0]) {
		parsed.Parameters["methods"] = strings.Split(strings.ToUpper(positional[0]), ",")
		positional = positional[1:]
	}
	if len(positional) >= 1 {
		parsed.Parameters["pattern"] = positional[0]
	}
}

// isMethodList reports whether every comma-separated element is an HTTP verb
func isMethodList(s string) bool {
	for _, part := range strings.Split(s, ",") {
		if !validMethods[strings.ToUpper(strings.TrimSpace(part))] {
			return false
		}
	}
	return true
}

// convertValue coerces a raw string value to the schema's parameter type
func (p *Parser) convertValue(annotationType AnnotationType, key, value string) interface{} {
	if p.registry == nil {
		return value
	}
	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return value
	}
	spec, exists := schema.Parameters[key]
	if !exists {
		return value
	}

	switch spec.Type {
	case BoolType:
		if converted, err := ConvertToBool(value); err == nil {
			return converted
		}
		return value
	case StringSliceType:
		if converted, err := ConvertToStringSlice(value); err == nil {
			return converted
		}
		return value
	default:
		return value
	}
}

// applyDefaults fills in schema defaults for parameters the user omitted
func (p *Parser) applyDefaults(parsed *ParsedAnnotation) error {
	if p.registry == nil {
		return nil
	}
	schema, err := p.registry.GetSchema(parsed.Type)
	if err != nil {
		return errors.Wrap(errors.SchemaErrorCode, fmt.Sprintf("no schema found for annotation type %s", parsed.Type), err).
			WithLocation(parsed.Location)
	}

	for name, spec := range schema.Parameters {
		if _, exists := parsed.Parameters[name]; !exists && spec.DefaultValue != nil {
			parsed.Parameters[name] = spec.DefaultValue
		}
	}
	return nil
}

// validate checks the annotation's parameters against its schema
func (p *Parser) validate(parsed *ParsedAnnotation) error {
	if p.registry == nil {
		return nil
	}
	schema, err := p.registry.GetSchema(parsed.Type)
	if err != nil {
		return errors.Wrap(errors.SchemaErrorCode, fmt.Sprintf("no schema found for annotation type %s", parsed.Type), err).
			WithLocation(parsed.Location)
	}

	for name, value := range parsed.Parameters {
		spec, exists := schema.Parameters[name]
		if !exists {
			return errors.Newf(errors.ValidationErrorCode, "unknown parameter '%s' for annotation type %s", name, parsed.Type).
				WithLocation(parsed.Location)
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return errors.Wrapf(errors.ValidationErrorCode, err, "parameter '%s' validation failed", name).
					WithLocation(parsed.Location)
			}
		}
	}

	for name, spec := range schema.Parameters {
		if spec.Required {
			if _, exists := parsed.Parameters[name]; !exists {
				return errors.Newf(errors.ValidationErrorCode, "missing required parameter '%s' for annotation type %s", name, parsed.Type).
					WithLocation(parsed.Location)
			}
		}
	}

	return nil
}

// stripQuotes removes surrounding quotes from a string
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
