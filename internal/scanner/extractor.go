package scanner

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"

	"github.com/luminovang/novaroute/internal/annotations"
	"github.com/luminovang/novaroute/internal/errors"
	"github.com/luminovang/novaroute/internal/models"
)

// Extractor reads candidate files and collects the routable types they
// declare, together with their route and context metadata. One Extractor
// serves one compile pass; candidates are discarded with it.
type Extractor struct {
	fileSet  *token.FileSet
	parser   *annotations.Parser
	resolver *ModuleResolver

	// OnSkip is invoked for files that fail to parse. Nil means silent.
	OnSkip func(path string, err error)

	order      []string
	candidates map[string]*models.CandidateType
	failed     map[string]bool
	errs       *errors.MultipleErrors
}

// NewExtractor creates an extractor for one scan pass rooted at rootDir
func NewExtractor(rootDir string) *Extractor {
	return &Extractor{
		fileSet:    token.NewFileSet(),
		parser:     annotations.NewParser(annotations.DefaultRegistry()),
		resolver:   NewModuleResolver(rootDir),
		candidates: make(map[string]*models.CandidateType),
		failed:     make(map[string]bool),
		errs:       errors.NewMultipleErrors(),
	}
}

// AddFile parses one candidate file and folds its declarations into the
// pass. A file that cannot be parsed is skipped; the pass continues.
func (e *Extractor) AddFile(fd FileDescriptor) {
	file, err := goparser.ParseFile(e.fileSet, fd.Path, nil, goparser.ParseComments)
	if err != nil {
		if e.OnSkip != nil {
			e.OnSkip(fd.Path, err)
		}
		return
	}

	pkgName := file.Name.Name

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok != token.TYPE || node.Doc == nil {
				return true
			}
			for _, spec := range node.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.StructType); !ok {
					continue
				}
				e.processTypeComments(node.Doc, pkgName, typeSpec.Name.Name, fd.Path)
			}
		case *ast.FuncDecl:
			if node.Doc == nil || node.Recv == nil {
				return true
			}
			recvName := receiverTypeName(node.Recv)
			if recvName == "" || !ast.IsExported(node.Name.Name) {
				return true
			}
			e.processMethodComments(node.Doc, pkgName, recvName, node.Name.Name, fd.Path)
		}
		return true
	})
}

// Candidates returns the collected types in discovery order, excluding
// types whose metadata failed extraction.
func (e *Extractor) Candidates() []models.CandidateType {
	result := make([]models.CandidateType, 0, len(e.order))
	for _, name := range e.order {
		if e.failed[name] {
			continue
		}
		result = append(result, *e.candidates[name])
	}
	return result
}

// Errors returns the configuration errors collected during the pass
func (e *Extractor) Errors() *errors.MultipleErrors {
	return e.errs
}

// Reset discards all per-pass state so the extractor memory can be reclaimed
func (e *Extractor) Reset() {
	e.order = nil
	e.candidates = make(map[string]*models.CandidateType)
	e.failed = make(map[string]bool)
	e.errs = errors.NewMultipleErrors()
}

// processTypeComments handles capability and context annotations on a struct
func (e *Extractor) processTypeComments(doc *ast.CommentGroup, pkgName, typeName, filePath string) {
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		parsed, err := e.parser.ParseAnnotation(comment.Text, e.location(comment.Pos()))
		if err != nil {
			e.fail(pkgName, typeName, err)
			return
		}

		candidate := e.ensure(pkgName, typeName, filePath)
		switch parsed.Type {
		case annotations.ControllerAnnotation:
			e.markCapability(candidate, models.CapabilityHTTPController, parsed)
		case annotations.ViewAnnotation:
			e.markCapability(candidate, models.CapabilityViewController, parsed)
		case annotations.RoutableAnnotation:
			e.markCapability(candidate, models.CapabilityRoutable, parsed)
		case annotations.CommandAnnotation:
			e.markCapability(candidate, models.CapabilityCommand, parsed)
		case annotations.ContextAnnotation:
			context, err := contextFromAnnotation(parsed)
			if err != nil {
				e.fail(pkgName, typeName, err)
				return
			}
			candidate.Contexts = append(candidate.Contexts, context)
		default:
			e.fail(pkgName, typeName, errors.NewRouterConfigurationError(
				typeName, "route annotations belong on methods, not types"))
			return
		}
	}
}

// processMethodComments handles route annotations on a controller method
func (e *Extractor) processMethodComments(doc *ast.CommentGroup, pkgName, recvName, methodName, filePath string) {
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		parsed, err := e.parser.ParseAnnotation(comment.Text, e.location(comment.Pos()))
		if err != nil {
			e.fail(pkgName, recvName, err)
			return
		}
		if parsed.Type != annotations.RouteAnnotation {
			e.fail(pkgName, recvName, errors.NewRouterConfigurationError(
				recvName, parsed.Type.String()+" annotations belong on types, not methods"))
			return
		}

		declaration, err := routeFromAnnotation(parsed)
		if err != nil {
			e.fail(pkgName, recvName, err)
			return
		}

		candidate := e.ensure(pkgName, recvName, filePath)
		candidate.AddRoute(methodName, declaration)
	}
}

// markCapability records a capability marker and its Abstract flag
func (e *Extractor) markCapability(candidate *models.CandidateType, capability models.Capability, parsed *annotations.ParsedAnnotation) {
	candidate.Capabilities = candidate.Capabilities.Add(capability)
	if parsed.GetBool("Abstract") {
		candidate.Abstract = true
	}
}

// ensure returns the candidate record for a type, creating it on first
// sight. Types are keyed per package so same-named types in different
// packages stay separate candidates.
func (e *Extractor) ensure(pkgName, typeName, filePath string) *models.CandidateType {
	key := pkgName + "." + typeName
	if existing, ok := e.candidates[key]; ok {
		return existing
	}
	candidate := &models.CandidateType{
		QualifiedName: e.resolver.QualifiedName(filePath, pkgName, typeName),
		Package:       pkgName,
		Name:          typeName,
		File:          filePath,
	}
	e.candidates[key] = candidate
	e.order = append(e.order, key)
	return candidate
}

// fail records a configuration error for a type and excludes it from the
// pass. Remaining types keep compiling; the aggregate error is surfaced
// to the caller at the end.
func (e *Extractor) fail(pkgName, typeName string, err error) {
	e.ensure(pkgName, typeName, "")
	e.failed[pkgName+"."+typeName] = true

	if routeErr, ok := err.(errors.RouteError); ok && routeErr.ErrorCode() == errors.RouterConfigurationErrorCode {
		e.errs.Add(routeErr)
		return
	}
	e.errs.Add(errors.WrapRouterConfigurationError(typeName, err))
}

func (e *Extractor) location(pos token.Pos) errors.SourceLocation {
	position := e.fileSet.Position(pos)
	return errors.SourceLocation{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// routeFromAnnotation converts a parsed route annotation to a declaration
func routeFromAnnotation(parsed *annotations.ParsedAnnotation) (models.RouteDeclaration, error) {
	phase, err := models.ParseMiddlewarePhase(parsed.GetString("Middleware"))
	if err != nil {
		return models.RouteDeclaration{}, errors.Wrap(errors.ValidationErrorCode, err.Error(), err).
			WithLocation(parsed.Location)
	}

	methods := parsed.GetStringSlice("methods", []string{"GET"})
	normalized := make([]string, len(methods))
	for i, m := range methods {
		normalized[i] = strings.ToUpper(strings.TrimSpace(m))
	}

	declaration := models.RouteDeclaration{
		Pattern:        parsed.GetString("pattern"),
		Methods:        normalized,
		IsErrorHandler: parsed.GetBool("Error"),
		Group:          parsed.GetString("Group"),
		Phase:          phase,
		Location:       parsed.Location,
	}
	if err := declaration.Validate(); err != nil {
		return models.RouteDeclaration{}, err
	}
	return declaration, nil
}

// contextFromAnnotation converts a parsed context annotation to a declaration
func contextFromAnnotation(parsed *annotations.ParsedAnnotation) (models.ContextDeclaration, error) {
	context := models.ContextDeclaration{
		Name:     parsed.GetString("Name", "web"),
		Pattern:  parsed.GetString("Pattern"),
		Location: parsed.Location,
	}

	if ref := parsed.GetString("OnError"); ref != "" {
		callback, err := models.ParseCallback(ref)
		if err != nil {
			return models.ContextDeclaration{}, errors.Wrap(errors.ValidationErrorCode, err.Error(), err).
				WithLocation(parsed.Location)
		}
		context.OnError = callback
	}
	return context, nil
}

// receiverTypeName extracts the bare type name from a method receiver
func receiverTypeName(recv *ast.FieldList) string {
	if len(recv.List) == 0 {
		return ""
	}
	switch t := recv.List[0].Type.(type) {
	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.Ident:
		return t.Name
	}
	return ""
}
