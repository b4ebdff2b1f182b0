package annotations

import (
	"fmt"
	"strings"
)

// Built-in annotation schemas

var validPhases = map[string]bool{"before": true, "after": true, "any": true}

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// RouteAnnotationSchema defines the schema for //nova::route annotations
var RouteAnnotationSchema = AnnotationSchema{
	Type:        RouteAnnotation,
	Description: "Binds a controller method to a URI pattern or CLI command pattern",
	Parameters: map[string]ParameterSpec{
		"methods": {
			Type:         StringSliceType,
			Required:     false,
			DefaultValue: []string{"GET"},
			Description:  "Comma-separated HTTP verbs this route answers; ignored for CLI group routes",
			Validator: func(v interface{}) error {
				methods, err := ConvertToStringSlice(v)
				if err != nil {
					return err
				}
				for _, m := range methods {
					if !validMethods[strings.ToUpper(m)] {
						return fmt.Errorf("unknown HTTP method '%s'", m)
					}
				}
				return nil
			},
		},
		"pattern": {
			Type:        StringType,
			Required:    true,
			Description: "URI pattern (regex-capable) or CLI command pattern",
			Validator: func(v interface{}) error {
				if strings.TrimSpace(v.(string)) == "" {
					return fmt.Errorf("pattern must not be empty")
				}
				return nil
			},
		},
		"Middleware": {
			Type:        StringType,
			Required:    false,
			Description: "Middleware phase: 'before', 'after', or 'any' (CLI only)",
			Validator: func(v interface{}) error {
				phase := strings.ToLower(v.(string))
				if !validPhases[phase] {
					return fmt.Errorf("must be 'before', 'after' or 'any', got '%s'", phase)
				}
				return nil
			},
		},
		"Group": {
			Type:        StringType,
			Required:    false,
			Description: "CLI command group; presence marks this declaration as a CLI binding",
		},
		"Error": {
			Type:         BoolType,
			Required:     false,
			DefaultValue: false,
			Description:  "Marks this as a fallback error route rather than a normal route",
		},
	},
	Examples: []string{
		"//nova::route GET /users",
		"//nova::route GET,POST /blog/([0-9-.]+)",
		"//nova::route GET /api/users -Middleware=before",
		"//nova::route GET /errors -Error",
		"//nova::route run-daily -Group=jobs",
		"//nova::route list -Group=jobs -Middleware=any",
	},
}

// ContextAnnotationSchema defines the schema for //nova::context annotations
var ContextAnnotationSchema = AnnotationSchema{
	Type:        ContextAnnotation,
	Description: "Declares a class-level routing context with an optional fallback error handler",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:         StringType,
			Required:     false,
			DefaultValue: "web",
			Description:  "Context identifier, e.g. 'web' or 'api'",
		},
		"Pattern": {
			Type:        StringType,
			Required:    true,
			Description: "URI prefix pattern this context governs",
		},
		"OnError": {
			Type:        StringType,
			Required:    false,
			Description: "Fallback handler reference in 'Type::Method' form",
			Validator: func(v interface{}) error {
				ref := v.(string)
				if !strings.Contains(ref, "::") {
					return fmt.Errorf("handler reference must be 'Type::Method', got '%s'", ref)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//nova::context -Pattern=/",
		"//nova::context -Name=api -Pattern=/api",
		"//nova::context -Name=web -Pattern=/ -OnError=ErrorController::onWebError",
	},
}

// capabilitySchema builds the shared schema for type-level capability markers
func capabilitySchema(annotationType AnnotationType, description string, examples ...string) AnnotationSchema {
	return AnnotationSchema{
		Type:        annotationType,
		Description: description,
		Parameters: map[string]ParameterSpec{
			"Abstract": {
				Type:         BoolType,
				Required:     false,
				DefaultValue: false,
				Description:  "Marks a base type that never contributes routing entries",
			},
		},
		Examples: examples,
	}
}

// ControllerAnnotationSchema defines the schema for //nova::controller annotations
var ControllerAnnotationSchema = capabilitySchema(ControllerAnnotation,
	"Marks a struct as an HTTP controller",
	"//nova::controller", "//nova::controller -Abstract")

// ViewAnnotationSchema defines the schema for //nova::view annotations
var ViewAnnotationSchema = capabilitySchema(ViewAnnotation,
	"Marks a struct as a view controller",
	"//nova::view")

// RoutableAnnotationSchema defines the schema for //nova::routable annotations
var RoutableAnnotationSchema = capabilitySchema(RoutableAnnotation,
	"Marks a struct as generically routable",
	"//nova::routable")

// CommandAnnotationSchema defines the schema for //nova::command annotations
var CommandAnnotationSchema = capabilitySchema(CommandAnnotation,
	"Marks a struct as a CLI command controller",
	"//nova::command", "//nova::command -Abstract")

// BuiltinSchemas returns all built-in annotation schemas keyed by type
func BuiltinSchemas() map[AnnotationType]AnnotationSchema {
	return map[AnnotationType]AnnotationSchema{
		RouteAnnotation:      RouteAnnotationSchema,
		ContextAnnotation:    ContextAnnotationSchema,
		ControllerAnnotation: ControllerAnnotationSchema,
		ViewAnnotation:       ViewAnnotationSchema,
		RoutableAnnotation:   RoutableAnnotationSchema,
		CommandAnnotation:    CommandAnnotationSchema,
	}
}
