package compiler

import (
	"fmt"
	"strings"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// ValidateAttributes walks every entity's attribute list and reports the argument-count
// and applicability problems the grammar can't reject on its own: a parser accepts
// `[deprecated(a, b, c)]` or `[compress]` on a field just fine, it's only once an
// attribute's meaning is known that "too many arguments" or "wrong kind of definition"
// becomes checkable. namespaces lists the language namespaces this invocation cares
// about (e.g. "cs"); an unrecognized directive whose `namespace::rest` prefix is one of
// these is reported as UnexpectedAttribute, while a directive in any other (or absent)
// namespace passes through unexamined, since it belongs to a backend this invocation
// isn't validating against.
func ValidateAttributes(store *ast.Store, reporter *diagnostics.Reporter, namespaces []string) {
	for _, n := range store.AllNodes() {
		e, ok := n.(ast.Entity)
		if !ok {
			continue
		}
		for _, attr := range e.Attributes() {
			validateAttribute(reporter, e, attr, namespaces)
		}
	}
}

func validateAttribute(reporter *diagnostics.Reporter, owner ast.Entity, attr ast.Attribute, namespaces []string) {
	switch attr.Kind {
	case ast.AttrDeprecated:
		checkAtMostOneArgument(reporter, attr)
	case ast.AttrCompress:
		checkNoArguments(reporter, attr)
		if !attributeAppliesTo(owner, ast.KindInterface, ast.KindOperation) {
			d := diagnostics.NewError(
				diagnostics.CompressAttributeCannotBeApplied,
				"the compress attribute can only be applied to interfaces and operations",
				attr.Span,
			)
			reporter.Report(d)
		}
	case ast.AttrOneway:
		checkNoArguments(reporter, attr)
	case ast.AttrSlicedFormat:
		checkAtMostOneArgument(reporter, attr)
	case ast.AttrCustom:
		if namespace, ok := attributeNamespace(attr.Directive); ok && inNamespaceList(namespace, namespaces) {
			d := diagnostics.NewError(
				diagnostics.UnexpectedAttribute,
				fmt.Sprintf("unexpected attribute %q", attr.Directive),
				attr.Span,
			)
			reporter.Report(d)
		}
	}
}

// attributeNamespace splits a directive on its first "::" and reports the part before
// it, or ok=false if the directive carries no namespace at all.
func attributeNamespace(directive string) (string, bool) {
	namespace, _, ok := strings.Cut(directive, "::")
	return namespace, ok
}

func inNamespaceList(namespace string, namespaces []string) bool {
	for _, n := range namespaces {
		if n == namespace {
			return true
		}
	}
	return false
}

// attributeAppliesTo reports whether owner's node kind is one of the kinds a
// kind-restricted attribute may be attached to.
func attributeAppliesTo(owner ast.Entity, kinds ...ast.NodeKind) bool {
	for _, k := range kinds {
		if owner.NodeKind() == k {
			return true
		}
	}
	return false
}

func checkNoArguments(reporter *diagnostics.Reporter, attr ast.Attribute) {
	if len(attr.Arguments) > 0 {
		reporter.Report(diagnostics.NewError(
			diagnostics.TooManyArguments,
			fmt.Sprintf("attribute %q does not accept any arguments", attr.Directive),
			attr.Span,
		))
	}
}

func checkAtMostOneArgument(reporter *diagnostics.Reporter, attr ast.Attribute) {
	if len(attr.Arguments) > 1 {
		reporter.Report(diagnostics.NewError(
			diagnostics.TooManyArguments,
			fmt.Sprintf("attribute %q accepts at most one argument", attr.Directive),
			attr.Span,
		))
	}
}

