package models

// Capability marks what kind of routable component a scanned type is
type Capability int

const (
	CapabilityRoutable Capability = 1 << iota
	CapabilityHTTPController
	CapabilityViewController
	CapabilityCommand
)

// CapabilitySet is a bitset of capabilities declared on a type
type CapabilitySet int

// Has reports whether the set contains the given capability
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// HasAny reports whether the set contains at least one of the given capabilities
func (s CapabilitySet) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Add returns the set with the given capability included
func (s CapabilitySet) Add(c Capability) CapabilitySet {
	return s | CapabilitySet(c)
}

// IsEmpty reports whether no capability is declared
func (s CapabilitySet) IsEmpty() bool {
	return s == 0
}

// MethodDeclarations groups the route declarations attached to one method.
// Declarations are kept in source order; that order is load-bearing for
// first-match dispatch.
type MethodDeclarations struct {
	Name   string // method name on the declaring type
	Routes []RouteDeclaration
}

// CandidateType is a discovered routable type. Candidates live only for
// the duration of a compile pass and are discarded afterwards.
type CandidateType struct {
	QualifiedName string // module-qualified name, e.g. example.com/app/web.BlogController
	Package       string // package name
	Name          string // bare type name
	File          string // source file the type was discovered in
	Abstract      bool   // base type, never registered
	Capabilities  CapabilitySet
	Contexts      []ContextDeclaration // class-level context bindings
	Methods       []MethodDeclarations // method-level route bindings, source order
}

// Instantiable reports whether the type may contribute routing entries
func (t CandidateType) Instantiable() bool {
	return !t.Abstract && !t.Capabilities.IsEmpty()
}

// Callback builds a handler reference for one of the type's methods
func (t CandidateType) Callback(method string) Callback {
	return Callback{Type: t.Name, Method: method}
}

// AddRoute appends a route declaration to the named method, preserving
// declaration order within the method and method discovery order within
// the type.
func (t *CandidateType) AddRoute(method string, route RouteDeclaration) {
	for i := range t.Methods {
		if t.Methods[i].Name == method {
			t.Methods[i].Routes = append(t.Methods[i].Routes, route)
			return
		}
	}
	t.Methods = append(t.Methods, MethodDeclarations{Name: method, Routes: []RouteDeclaration{route}})
}
