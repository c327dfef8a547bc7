// Package diagnostics implements component I: the diagnostic engine. It defines the
// stable error-code table, the Error/Lint severity split, the allow-list level-override
// pass, and both the human-readable and the JSON diagnostic output formats.
package diagnostics

// Code is a stable diagnostic identifier: "E###" for errors, a bare lint name for lints.
type Code string

// Error codes, in the same order the reference compiler assigns them.
const (
	CompressAttributeCannotBeApplied    Code = "E001"
	DeprecatedAttributeCannotBeApplied  Code = "E002"
	CannotBeEmpty                       Code = "E003"
	ArgumentNotSupported                Code = "E004"
	KeyMustBeNonOptional                Code = "E005"
	StructKeyMustBeCompact              Code = "E006"
	KeyTypeNotSupported                 Code = "E007"
	StructKeyContainsDisallowedType     Code = "E008"
	CannotUseOptionalUnderlyingType      Code = "E009"
	MustContainEnumerators              Code = "E010"
	UnderlyingTypeMustBeIntegral         Code = "E011"
	Redefinition                        Code = "E012"
	Shadows                             Code = "E013"
	CannotHaveDuplicateTag               Code = "E014"
	RequiredMustPrecedeOptional          Code = "E015"
	StreamedMembersMustBeLast            Code = "E016"
	ReturnTuplesMustContainAtLeastTwo    Code = "E017"
	CompactStructCannotContainTagged    Code = "E018"
	TaggedMemberMustBeOptional           Code = "E019"
	CannotTagClass                      Code = "E020"
	CannotTagContainingClass            Code = "E021"
	TypeMismatch                        Code = "E022"
	ConcreteTypeMismatch                Code = "E023"
	CompactStructCannotBeEmpty           Code = "E024"
	SelfReferentialTypeAliasNeedsConcrete Code = "E025"
	EnumeratorValueOutOfBounds           Code = "E026"
	TagValueOutOfBounds                  Code = "E027"
	DuplicateEnumeratorValue             Code = "E028"
	NotSupportedInCompilationMode        Code = "E029"
	UnsupportedType                      Code = "E030"
	ExceptionAsDataType                  Code = "E031"
	OptionalsNotSupported                Code = "E032"
	StreamedParametersNotSupported       Code = "E033"
	UnexpectedAttribute                  Code = "E034"
	MissingRequiredArgument              Code = "E035"
	TooManyArguments                     Code = "E036"
	MissingRequiredAttribute             Code = "E037"
	MultipleStreamedMembers              Code = "E038"
	CompactIdOutOfBounds                  Code = "E039"
	IntegerLiteralOverflows              Code = "E040"
	InvalidIntegerLiteral                Code = "E041"
	InvalidEncodingVersion               Code = "E042"
	MultipleEncodingVersions             Code = "E043"
	FileScopedModuleCannotContainSubModules Code = "E044"
	AnyExceptionNotSupported             Code = "E045"
	InvalidWarningCode                   Code = "E046"
	InfiniteSizeCycle                    Code = "E047"
	CannotResolveDueToCycles             Code = "E048"
	DoesNotExist                         Code = "E049"
	TypeAliasOfOptional                  Code = "E050"

	// CodeIO and CodeSyntax are reported without a stable code, exactly as the
	// reference compiler's generic IO/Syntax error kinds are.
	CodeIO     Code = ""
	CodeSyntax Code = ""
)

// Lint codes. Unlike errors these are stable names, not numbers, since the allow-list
// override matches on the literal code string (or "All").
const (
	LintDoesNotExist           Code = "DoesNotExist"
	LintLinkToInvalidElement   Code = "LinkToInvalidElement"
	LintIncorrectDocComment    Code = "IncorrectDocComment"
	LintUseOfDeprecatedEntity  Code = "UseOfDeprecatedEntity"
)

// LintAll is the wildcard accepted by an --allow list or allow(...) attribute to
// suppress every lint in one entry.
const LintAll = "All"
