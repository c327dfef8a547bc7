package compiler

import (
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
)

// PatchCommentLinks resolves every `{@link Identifier}` tag and `@throws Identifier`
// reference found in doc comments against the store, scoped to the commented entity's own
// scope. Unlike type references, a dangling link is never an error: documentation that
// mentions a renamed or removed type shouldn't fail the build, so unresolved links are
// reported as lints instead.
func PatchCommentLinks(store *ast.Store, reporter *diagnostics.Reporter) {
	for _, n := range store.AllNodes() {
		entity, ok := n.(ast.Entity)
		if !ok {
			continue
		}
		comment := entity.DocComment()
		if comment == nil {
			continue
		}

		for _, link := range comment.Links {
			resolveLink(store, reporter, entity, link)
		}
		for i := range comment.Throws {
			resolveThrows(store, reporter, entity, &comment.Throws[i])
		}
		for i := range comment.SeeAlso {
			resolveSeeAlso(store, reporter, entity, &comment.SeeAlso[i])
		}
	}
}

func resolveLink(store *ast.Store, reporter *diagnostics.Reporter, owner ast.Entity, link *ast.LinkTag) {
	target, ok := store.FindNodeWithScope(link.Raw, owner.ScopeString())
	if !ok {
		reportDoesNotExist(reporter, owner, link.Raw, link.Span)
		return
	}
	link.SetTarget(target)
}

// resolveThrows resolves an `@throws` tag's exception name. A ThrowsDoc carries no span
// of its own (it's a plain string field filled in right after the `@throws` keyword, not
// an inline {@link ...} tag), so diagnostics about it are anchored to the owning entity's
// span instead.
func resolveThrows(store *ast.Store, reporter *diagnostics.Reporter, owner ast.Entity, throws *ast.ThrowsDoc) {
	if throws.ExceptionName == "" {
		return
	}
	target, ok := store.FindNodeWithScope(throws.ExceptionName, owner.ScopeString())
	if !ok {
		reportDoesNotExist(reporter, owner, throws.ExceptionName, owner.SpanOf())
		return
	}
	exception, ok := target.(*ast.Exception)
	if !ok {
		reportLinkToInvalidElement(reporter, owner, target, owner.SpanOf())
		return
	}
	throws.SetTarget(exception)
}

// resolveSeeAlso resolves an `@see` tag's identifier, same as an inline {@link ...} tag:
// any kind of entity is a valid target, so a resolved see tag never needs
// reportLinkToInvalidElement the way a throws tag's exception-only target does.
func resolveSeeAlso(store *ast.Store, reporter *diagnostics.Reporter, owner ast.Entity, see *ast.SeeAlsoDoc) {
	if see.Identifier == "" {
		return
	}
	target, ok := store.FindNodeWithScope(see.Identifier, owner.ScopeString())
	if !ok {
		reportDoesNotExist(reporter, owner, see.Identifier, owner.SpanOf())
		return
	}
	see.SetTarget(target)
}

func reportDoesNotExist(reporter *diagnostics.Reporter, owner ast.Entity, identifier string, span text.Span) {
	d := diagnostics.NewLint(
		diagnostics.LintDoesNotExist,
		fmt.Sprintf("no element named %q could be found", identifier),
		span,
		diagnostics.Scope(ast.ScopedIdentifier(owner)),
		diagnostics.LevelWarning,
	)
	reporter.Report(d)
}

func reportLinkToInvalidElement(reporter *diagnostics.Reporter, owner ast.Entity, target ast.Entity, span text.Span) {
	d := diagnostics.NewLint(
		diagnostics.LintLinkToInvalidElement,
		fmt.Sprintf("link references %s %q, which is not a valid target here", target.NodeKind(), target.Identifier()),
		span,
		diagnostics.Scope(ast.ScopedIdentifier(owner)),
		diagnostics.LevelWarning,
	)
	reporter.Report(d)
}
