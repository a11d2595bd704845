package songfilter

// FilterVisitor provides an interface for visiting a filter tree. Interface
// functions are called as each node is visited, children first. Each
// method can return an error to indicate a construction failure or a
// semantic error, which immediately halts the visit, returning that error
// to the caller of the Visit function below. If the function returns nil
// the visit continues to the next node in the tree.
type FilterVisitor interface {
	// VisitAnd inspects a conjunction of children, all mandatory.
	VisitAnd(node *And) error

	// VisitNot inspects a negated child.
	VisitNot(node *Not) error

	// VisitTagMatch inspects a tag or ANY-tag string match.
	VisitTagMatch(node *TagMatch) error

	// VisitUriMatch inspects a URI string match.
	VisitUriMatch(node *UriMatch) error

	// VisitBase inspects a base-directory scope.
	VisitBase(node *Base) error

	// VisitModifiedSince inspects a modified-time threshold.
	VisitModifiedSince(node *ModifiedSince) error

	// VisitAddedSince inspects an added-time threshold.
	VisitAddedSince(node *AddedSince) error

	// VisitAudioFormatMatch inspects an audio-format match.
	VisitAudioFormatMatch(node *AudioFormatMatch) error

	// VisitPriorityAtLeast inspects a priority threshold.
	VisitPriorityAtLeast(node *PriorityAtLeast) error
}

// Visitor is a base FilterVisitor whose methods are all no-ops. Embed this
// struct into your own visitor so you only need to implement the methods
// you require.
type Visitor struct{}

func (Visitor) VisitAnd(*And) error                             { return nil }
func (Visitor) VisitNot(*Not) error                             { return nil }
func (Visitor) VisitTagMatch(*TagMatch) error                   { return nil }
func (Visitor) VisitUriMatch(*UriMatch) error                   { return nil }
func (Visitor) VisitBase(*Base) error                           { return nil }
func (Visitor) VisitModifiedSince(*ModifiedSince) error         { return nil }
func (Visitor) VisitAddedSince(*AddedSince) error                { return nil }
func (Visitor) VisitAudioFormatMatch(*AudioFormatMatch) error   { return nil }
func (Visitor) VisitPriorityAtLeast(*PriorityAtLeast) error     { return nil }

// Visit walks node and its descendants, visiting children before their
// parent, and stops at the first error a visitor method returns.
func Visit(node Node, visitor FilterVisitor) error {
	switch n := node.(type) {
	case *And:
		for _, c := range n.Children {
			if err := Visit(c, visitor); err != nil {
				return err
			}
		}
		return visitor.VisitAnd(n)
	case *Not:
		if err := Visit(n.Child, visitor); err != nil {
			return err
		}
		return visitor.VisitNot(n)
	case *TagMatch:
		return visitor.VisitTagMatch(n)
	case *UriMatch:
		return visitor.VisitUriMatch(n)
	case *Base:
		return visitor.VisitBase(n)
	case *ModifiedSince:
		return visitor.VisitModifiedSince(n)
	case *AddedSince:
		return visitor.VisitAddedSince(n)
	case *AudioFormatMatch:
		return visitor.VisitAudioFormatMatch(n)
	case *PriorityAtLeast:
		return visitor.VisitPriorityAtLeast(n)
	}
	return nil
}
